// Package object implements the QuadRay scene graph: the Object/Array/
// Surface/Camera/Light hierarchy, its two-phase update pipeline
// and the relation/custom-clipper machinery used for constructive
// set-subtraction.
package object

import "github.com/zouzias/QuadRay-engine/types"

// Kind tags the concrete variant of an Object, used for the update/
// adjustMinMax dispatch table described in Design Notes ("the current
// class hierarchy has only two real polymorphism points").
type Kind uint8

const (
	KindArray Kind = iota
	KindCamera
	KindLight
	KindPlane
	KindCylinder
	KindSphere
	KindCone
	KindParaboloid
	KindHyperboloid
)

func (k Kind) IsSurface() bool {
	return k >= KindPlane
}

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindCamera:
		return "camera"
	case KindLight:
		return "light"
	case KindPlane:
		return "plane"
	case KindCylinder:
		return "cylinder"
	case KindSphere:
		return "sphere"
	case KindCone:
		return "cone"
	case KindParaboloid:
		return "paraboloid"
	case KindHyperboloid:
		return "hyperboloid"
	default:
		return "unknown"
	}
}

// TRMFlag records which part of a transform departs from trivial: the
// union of "SCL" (non +-1 scale) and "ROT" (non-90-degree-multiple
// rotation) used throughout.
type TRMFlag uint8

const (
	TRMScale TRMFlag = 1 << iota
	TRMRotate
)

// AnimFunc mutates an object's local transform in place when the frame time
// advances.
type AnimFunc func(time, prevTime int64, local *types.Transform3D, user interface{})

// Object is implemented by every scene graph node (Array, Camera, Light,
// Surface). Parent/TrNode/BVNode links are weak -- see base() -- they never
// participate in destruction (Design Notes).
type Object interface {
	base() *Base
	Kind() Kind
	Name() string
	WorldMatrix() types.Mat4
	WorldInverse() types.Mat4
	Parent() Object
}

// Base holds the fields common to every Object, mirroring rt_Object's
// fields in object.cpp/engine.h: the local transform, the composed world
// matrix and its inverse, the trnode/bvnode weak pointers and the
// trm/changed bookkeeping bits.
type Base struct {
	name     string
	parent   Object // weak: nil for the scene root
	userData interface{}

	Local types.Transform3D
	Anim  AnimFunc

	haveTime bool
	lastTime int64

	Matrix    types.Mat4
	InvMatrix types.Mat4
	AxisMap   types.AxisMap

	ObjHasTRM TRMFlag
	MtxHasTRM TRMFlag

	// TrNode points to the nearest ancestor-or-self with a non-trivial
	// transform; nil means "axis-aligned relative to world".
	TrNode Object
	// BVNode points to the ancestor Array that explicitly grouped this
	// object as a bounding volume.
	BVNode *Array

	Changed bool
}

func (b *Base) base() *Base { return b }

// Name returns the object's scene-literal name, used only for diagnostics.
func (b *Base) Name() string { return b.name }

// WorldMatrix returns the object's composed world matrix, the exported
// accessor used by code outside this package that only holds an Object
// reference (the tracer uses it to bring hit normals into world space).
func (b *Base) WorldMatrix() types.Mat4 { return b.Matrix }

// WorldInverse returns the inverse world matrix, which Phase 1 computes for
// every surface and array; it is never set for cameras and lights.
func (b *Base) WorldInverse() types.Mat4 { return b.InvMatrix }

// Parent returns the weak parent link (nil for the scene root).
func (b *Base) Parent() Object { return b.parent }

// IsOwnTrNode reports whether this object is its own trnode.
func (b *Base) IsOwnTrNode(self Object) bool {
	return b.TrNode == self
}
