package types

import "math"

// Mat3 is a row-major 3x3 matrix.
type Mat3 [9]float32

// Mat4 is a row-major 4x4 matrix, used throughout the engine for object,
// camera and trnode world matrices (see object.cpp's rt_mat4 composition).
type Mat4 [16]float32

// Ident4 returns the 4x4 identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Extract the top-left 3x3 matrix from a 4x4 matrix.
func (m Mat4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Translation4 builds a pure translation matrix.
func Translation4(p Vec3) Mat4 {
	m := Ident4()
	m[3], m[7], m[11] = p[0], p[1], p[2]
	return m
}

// Scale4 builds a pure (diagonal) scale matrix.
func Scale4(s Vec3) Mat4 {
	return Mat4{
		s[0], 0, 0, 0,
		0, s[1], 0, 0,
		0, 0, s[2], 0,
		0, 0, 0, 1,
	}
}

// RotationX4 builds a rotation matrix around the local X (I) axis.
func RotationX4(degrees float32) Mat4 {
	s, c := sincos(degrees)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY4 builds a rotation matrix around the local Y (J) axis.
func RotationY4(degrees float32) Mat4 {
	s, c := sincos(degrees)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ4 builds a rotation matrix around the local Z (K) axis.
func RotationZ4(degrees float32) Mat4 {
	s, c := sincos(degrees)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func sincos(degrees float32) (float32, float32) {
	rad := float64(degrees) * math.Pi / 180.0
	s, c := math.Sincos(rad)
	return float32(s), float32(c)
}

// Mul composes two 4x4 matrices as m*other (row-major, applies other first
// when used as m.Mul(other) for column vectors -- mirrors
// matrix_mul_matrix(tmp, a, b) from object.cpp where tmp = a*b).
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// Mul4x1 multiplies the matrix by a column vector.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

// MulPoint transforms a 3D point (implicit w=1) through the matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

// MulDir transforms a 3D direction (implicit w=0) through the matrix,
// ignoring translation.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// Inv computes the inverse of an affine 4x4 matrix built from rotation,
// scale and translation only (sufficient for trnode inverses --
// every matrix produced by Transform3D.Matrix is affine, never projective).
func (m Mat4) Inv() Mat4 {
	a00, a01, a02 := m[0], m[1], m[2]
	a10, a11, a12 := m[4], m[5], m[6]
	a20, a21, a22 := m[8], m[9], m[10]
	tx, ty, tz := m[3], m[7], m[11]

	det := a00*(a11*a22-a12*a21) - a01*(a10*a22-a12*a20) + a02*(a10*a21-a11*a20)
	if det == 0 {
		return Ident4()
	}
	invDet := 1.0 / det

	// Adjugate of the 3x3 linear part, transposed (cofactor matrix / det).
	i00 := (a11*a22 - a12*a21) * invDet
	i01 := (a02*a21 - a01*a22) * invDet
	i02 := (a01*a12 - a02*a11) * invDet
	i10 := (a12*a20 - a10*a22) * invDet
	i11 := (a00*a22 - a02*a20) * invDet
	i12 := (a02*a10 - a00*a12) * invDet
	i20 := (a10*a21 - a11*a20) * invDet
	i21 := (a01*a20 - a00*a21) * invDet
	i22 := (a00*a11 - a01*a10) * invDet

	// Inverse translation is -InvLinear * translation.
	itx := -(i00*tx + i01*ty + i02*tz)
	ity := -(i10*tx + i11*ty + i12*tz)
	itz := -(i20*tx + i21*ty + i22*tz)

	return Mat4{
		i00, i01, i02, itx,
		i10, i11, i12, ity,
		i20, i21, i22, itz,
		0, 0, 0, 1,
	}
}
