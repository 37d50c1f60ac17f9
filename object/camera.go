package object

import "github.com/zouzias/QuadRay-engine/types"

// CameraAction enumerates the 8-directional move/rotate actions accepted by
// Scene.Update.
type CameraAction uint8

const (
	ActionNone CameraAction = iota
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionTurnLeft
	ActionTurnRight
)

// Camera is a scene-graph leaf providing the image-plane basis used by the
// tiling/tracing stages.
type Camera struct {
	Base

	AmbientColor     types.Vec3
	AmbientIntensity float32

	// Focal distance; pov >= 2*ClipThreshold.
	Pov float32

	// Per-unit-time deltas applied by CameraAction.
	MoveDelta   types.Vec3
	RotateDelta types.Vec3

	// Image-plane basis in world space, refreshed by Phase 0.
	Hor types.Vec3
	Ver types.Vec3
	Nrm types.Vec3
}

// ClipThreshold is the near-plane clipping distance referenced by the
// Camera.Pov invariant and by the tile projector's near-plane clip test.
const ClipThreshold = 0.01

func (c *Camera) Kind() Kind { return KindCamera }

// NewCamera creates a camera with the given local transform and focal
// distance.
func NewCamera(name string, local types.Transform3D, pov float32) *Camera {
	return &Camera{
		Base: Base{name: name, Local: local},
		Pov:  pov,
	}
}

// Move applies one CameraAction to the camera's local transform. Movement
// follows the camera's current Hor/Ver/Nrm basis scaled by MoveDelta;
// turning changes only the rotation about Z, by RotateDelta[2].
func (c *Camera) Move(action CameraAction) {
	switch action {
	case ActionMoveForward:
		c.Local.Position = c.Local.Position.Add(c.Nrm.Mul(c.MoveDelta[2]))
	case ActionMoveBack:
		c.Local.Position = c.Local.Position.Sub(c.Nrm.Mul(c.MoveDelta[2]))
	case ActionMoveLeft:
		c.Local.Position = c.Local.Position.Sub(c.Hor.Mul(c.MoveDelta[0]))
	case ActionMoveRight:
		c.Local.Position = c.Local.Position.Add(c.Hor.Mul(c.MoveDelta[0]))
	case ActionMoveUp:
		c.Local.Position = c.Local.Position.Add(c.Ver.Mul(c.MoveDelta[1]))
	case ActionMoveDown:
		c.Local.Position = c.Local.Position.Sub(c.Ver.Mul(c.MoveDelta[1]))
	case ActionTurnLeft:
		c.Local.Rotation[2] = types.NormalizeAngle(c.Local.Rotation[2] - c.RotateDelta[2])
	case ActionTurnRight:
		c.Local.Rotation[2] = types.NormalizeAngle(c.Local.Rotation[2] + c.RotateDelta[2])
	}
	c.Changed = true
}

// refreshBasis recomputes Hor/Ver/Nrm from the camera's world matrix; called
// by Phase 0 (updateObject) once the camera's matrix is composed.
func (c *Camera) refreshBasis() {
	c.Hor = c.Matrix.MulDir(types.XYZ(1, 0, 0)).Normalize()
	c.Ver = c.Matrix.MulDir(types.XYZ(0, 1, 0)).Normalize()
	c.Nrm = c.Matrix.MulDir(types.XYZ(0, 0, 1)).Normalize()
}

// Position returns the camera's world-space eye position.
func (c *Camera) Position() types.Vec3 {
	return c.Matrix.MulPoint(types.Vec3{})
}
