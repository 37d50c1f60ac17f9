package object

import "github.com/zouzias/QuadRay-engine/log"

var logger = log.New("object")
