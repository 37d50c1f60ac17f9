package engine

import "errors"

var (
	ErrNoScene           = errors.New("engine: scene has no root array")
	ErrNoCamera          = errors.New("engine: scene has no camera")
	ErrUnsupportedTarget = errors.New("engine: requested simd width/type has no registered backend")
	ErrWorkerFailure     = errors.New("engine: worker reported a failure, frame aborted")
	ErrIO                = errors.New("engine: frame save failed")
)
