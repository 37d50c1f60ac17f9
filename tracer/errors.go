package tracer

import "errors"

var (
	ErrUnsupportedTarget = errors.New("tracer: no registered backend for the requested width/variant")
	ErrNoBackends        = errors.New("tracer: no packet tracer backends registered")
)
