package arena

import "errors"

// Sentinel errors for the error kinds owned by the arena/registry.
var (
	ErrAllocExhausted = errors.New("arena: allocation exceeds arena address range")
	ErrMalformedScene = errors.New("arena: malformed scene literal")
)
