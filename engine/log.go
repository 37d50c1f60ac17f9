package engine

import "github.com/zouzias/QuadRay-engine/log"

var logger = log.New("engine")
