package object

import "github.com/zouzias/QuadRay-engine/types"

// MaterialTag is the material's broad category.
type MaterialTag uint8

const (
	MaterialPlain MaterialTag = iota
	MaterialLight
	MaterialMetal
)

// PropertyBits are the derived material property flags computed from the
// material's numeric fields.
type PropertyBits uint16

const (
	PropTexture PropertyBits = 1 << iota
	PropReflect
	PropRefract
	PropSpecular
	PropOpaque
	PropTransp
	PropLight
	PropNormal
	PropMetal
)

// Texture is either a solid XRGB value or a (width, height, pixels) image.
// Decoding image files from disk is explicitly out of scope; the pixel
// buffer, if any, is supplied already decoded by the caller.
type Texture struct {
	Name string

	// Solid is used when Width/Height are zero: every texel reads as
	// this XRGB value.
	Solid uint32

	Width, Height uint32
	Pixels        []uint32
}

// IsSolid reports whether the texture has no backing pixel buffer.
func (t *Texture) IsSolid() bool {
	return t.Width == 0 || t.Height == 0
}

// Sample performs a nearest lookup at normalized UV coordinates, wrapping
// both axes.
func (t *Texture) Sample(u, v float32) uint32 {
	if t.IsSolid() {
		return t.Solid
	}
	u -= float32(int(u))
	v -= float32(int(v))
	if u < 0 {
		u += 1
	}
	if v < 0 {
		v += 1
	}
	x := uint32(u * float32(t.Width))
	y := uint32(v * float32(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

// Material holds the per-side shading parameters referenced by a Surface's
// outer/inner Side.
type Material struct {
	Tag MaterialTag

	Texture *Texture

	// Diffuse/specular/power triple.
	Diffuse  types.Vec3
	Specular types.Vec3
	Power    float32

	Reflect      float32
	Transparency float32 // general opacity in [0,1]; 1 == fully transparent (decision (b), DESIGN.md)
	RefractIndex float32

	props PropertyBits
}

// Properties lazily computes and caches the derived property bits.
func (m *Material) Properties() PropertyBits {
	if m.props != 0 {
		return m.props
	}
	var p PropertyBits
	if m.Texture != nil {
		p |= PropTexture
	}
	if m.Reflect > 0 {
		p |= PropReflect
	}
	if m.Transparency > 0 {
		p |= PropRefract | PropTransp
	} else {
		p |= PropOpaque
	}
	if m.Power > 0 {
		p |= PropSpecular
	}
	switch m.Tag {
	case MaterialLight:
		p |= PropLight
	case MaterialMetal:
		p |= PropMetal | PropNormal
	}
	m.props = p
	return p
}

// Opaque reports whether the material is fully opaque (decision (b)).
func (m *Material) Opaque() bool {
	return m.Transparency <= 0
}

// Side bundles a material reference with a per-surface 2D UV transform.
// The tracer samples textures at the surface's local X/Y coordinates and
// does not apply UVOffset, UVScale or UVAngle.
type Side struct {
	Material *Material
	UVOffset types.Vec2
	UVScale  types.Vec2
	UVAngle  float32
}
