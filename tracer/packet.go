package tracer

import (
	"github.com/zouzias/QuadRay-engine/object"
	"github.com/zouzias/QuadRay-engine/types"
)

// Packet is one SIMD-wide group of rays sharing an origin (camera), traced
// in lockstep with per-lane masks. Dirs has exactly Width() entries for the
// backend that will trace it; a lane whose Active entry is false is
// skipped by Trace and its output entry left 0. NewPacket starts every
// lane active and Trace does not clear the mask.
type Packet struct {
	Origin types.Vec3
	Dirs   []types.Vec3
	Active []bool

	Depth uint32

	// FSAASamples is 1 for FSAANone, 4 for FSAA4X; the backend accumulates
	// this many sub-pixel offsets per lane and averages before writing
	// the packed output.
	FSAASamples int
}

// NewPacket allocates a packet with every lane initially active.
func NewPacket(origin types.Vec3, dirs []types.Vec3, depth uint32, fsaaSamples int) *Packet {
	active := make([]bool, len(dirs))
	for i := range active {
		active[i] = true
	}
	return &Packet{Origin: origin, Dirs: dirs, Active: active, Depth: depth, FSAASamples: fsaaSamples}
}

// SceneView is the read-only slice of scene state a packet trace needs:
// the tile's front-to-back sorted surface list, the frame's light list (in
// draw order) and the ambient term contributed by the active camera.
type SceneView struct {
	Surfaces         []*object.Surface
	Lights           []*object.Light
	Ambient          types.Vec3
	AmbientIntensity float32
}

// PacketTracer is the capability trait a rendering backend registers at
// startup. Width and Variant identify it for SetSIMD selection; Trace
// consumes one packet against one tile's SceneView and returns exactly
// Width() packed XRGB pixels, one per lane.
type PacketTracer interface {
	Width() int
	Variant() string
	Trace(pkt *Packet, view *SceneView) []uint32
}
