package object

import "github.com/zouzias/QuadRay-engine/types"

// Light is a scene-graph leaf. Lum[0] is ambient intensity, Lum[1] is
// source intensity; Attenuation is (range, constant, linear, quadratic).
type Light struct {
	Base

	Color       types.Vec3
	Lum         [2]float32
	Attenuation [4]float32
}

func (l *Light) Kind() Kind { return KindLight }

// NewLight creates a light with the given local transform.
func NewLight(name string, local types.Transform3D) *Light {
	return &Light{Base: Base{name: name, Local: local}}
}

// Position returns the light's world-space position.
func (l *Light) Position() types.Vec3 {
	return l.Matrix.MulPoint(types.Vec3{})
}

// AttenuationAt computes the inverse-square-with-linear attenuation factor
// at the given distance, clamped to the light's Range.
func (l *Light) AttenuationAt(dist float32) float32 {
	if l.Attenuation[0] > 0 && dist > l.Attenuation[0] {
		return 0
	}
	denom := l.Attenuation[1] + l.Attenuation[2]*dist + l.Attenuation[3]*dist*dist
	if denom <= 0 {
		return 1
	}
	return 1.0 / denom
}
