package types

// Transform3D is the per-object scale/rotation/position triple from the
// scene literal. Rotation components are Euler degrees, composed as the
// matrix product Rz*Ry*Rx: about the fixed axes, X is applied first, then
// Y, then Z (matches object.cpp's matrix_from_angles: K, J, I).
type Transform3D struct {
	Scale    Vec3
	Rotation Vec3
	Position Vec3
}

// Ident3D returns the identity transform.
func Ident3D() Transform3D {
	return Transform3D{
		Scale: Vec3{1, 1, 1},
	}
}

// trivialAngles lists the rotation components that keep a transform trivial,
// normalized to (-180, +180].
var trivialAngles = map[float32]bool{
	-90: true, 0: true, 90: true, 180: true,
}

// NormalizeAngle folds a degree value into (-180, +180].
func NormalizeAngle(deg float32) float32 {
	for deg <= -180 {
		deg += 360
	}
	for deg > 180 {
		deg -= 360
	}
	return deg
}

// IsTrivial reports whether the transform reduces to an axis permutation
// with sign flips: every scale component in {-1,+1} and every rotation
// component a multiple of 90 degrees.
func (t Transform3D) IsTrivial() bool {
	for i := 0; i < 3; i++ {
		s := t.Scale[i]
		if s != 1 && s != -1 {
			return false
		}
		if !trivialAngles[NormalizeAngle(t.Rotation[i])] {
			return false
		}
	}
	return true
}

// HasScale reports whether any scale component departs from {-1,+1} (the
// "SCL" bit in object.cpp's obj_has_trm computation).
func (t Transform3D) HasScale() bool {
	for i := 0; i < 3; i++ {
		if t.Scale[i] != 1 && t.Scale[i] != -1 {
			return true
		}
	}
	return false
}

// HasRotation reports whether any rotation component departs from the
// trivial (multiple-of-90) set (the "ROT" bit).
func (t Transform3D) HasRotation() bool {
	for i := 0; i < 3; i++ {
		if !trivialAngles[NormalizeAngle(t.Rotation[i])] {
			return true
		}
	}
	return false
}

// Matrix composes scale, rotation (Z*Y*X) and translation into a single
// world matrix, mirroring object.cpp's per-object matrix construction.
func (t Transform3D) Matrix() Mat4 {
	m := Scale4(t.Scale)
	m = RotationX4(t.Rotation[0]).Mul(m)
	m = RotationY4(t.Rotation[1]).Mul(m)
	m = RotationZ4(t.Rotation[2]).Mul(m)
	m = Translation4(t.Position).Mul(m)
	return m
}

// AABB is an axis-aligned bounding box. ±Inf is a valid bound meaning
// "unbounded" on that side.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Union returns the smallest AABB enclosing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: MinVec3(a.Min, b.Min), Max: MaxVec3(a.Max, b.Max)}
}

// Contains reports whether b is fully enclosed by a (used to assert
// bbox ⊆ cbox).
func (a AABB) Contains(b AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] < a.Min[i] || b.Max[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// AxisMap is the signed permutation extracted from an axis-aligned matrix:
// Map[i] names which world axis local axis i maps to, Sgn[i] is the
// corresponding sign.
type AxisMap struct {
	Map [3]int8
	Sgn [3]float32
}

// IdentAxisMap returns the map/sign pair for an untransformed object.
func IdentAxisMap() AxisMap {
	return AxisMap{Map: [3]int8{0, 1, 2}, Sgn: [3]float32{1, 1, 1}}
}
