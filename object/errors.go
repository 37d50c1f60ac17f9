package object

import "errors"

// Sentinel errors for the error kinds raised while building or walking
// the scene graph.
var (
	ErrMalformedScene = errors.New("object: malformed scene literal")
	ErrLimitExceeded  = errors.New("object: generated polyhedron exceeds vertex/edge/face limit")
	ErrRelationIndex  = errors.New("object: relation references an out-of-range child index")
)

// Hard caps on generated polyhedra; exceeding any of these yields ErrLimitExceeded.
const (
	VertsLimit = 8
	EdgesLimit = 12
	FacesLimit = 6
)
