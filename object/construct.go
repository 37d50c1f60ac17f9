package object

import "github.com/zouzias/QuadRay-engine/types"

// Tag identifies a scene literal record's variant. Tags beyond the ones
// this package recognizes are valid input: Build skips them rather than
// failing, adjusting the parent's effective child count.
type Tag int

const (
	TagArray Tag = iota
	TagPlane
	TagCylinder
	TagSphere
	TagCone
	TagParaboloid
	TagHyperboloid
	TagCamera
	TagLight
)

// Record is one node of an in-memory scene literal, the external caller's
// representation before it is built into a live scene graph. A Record
// owns its own copy of Transform3D and is never mutated by Build, so the
// same literal tree can be built into more than one scene.
type Record struct {
	Name  string
	Tag   Tag
	Local types.Transform3D
	Anim  AnimFunc
	User  interface{}

	// Array payload.
	Children  []*Record
	Relations []Relation

	// Surface payload.
	ClipBox       types.AABB
	Outer, Inner  Side
	Sci, Scj, Sck float32
	Ratio         float32
	Param         float32
	Hyp           float32

	// Camera payload.
	Pov              float32
	AmbientColor     types.Vec3
	AmbientIntensity float32
	MoveDelta        types.Vec3
	RotateDelta      types.Vec3

	// Light payload.
	Color       types.Vec3
	Lum         [2]float32
	Attenuation [4]float32
}

var tagToKind = map[Tag]Kind{
	TagPlane:       KindPlane,
	TagCylinder:    KindCylinder,
	TagSphere:      KindSphere,
	TagCone:        KindCone,
	TagParaboloid:  KindParaboloid,
	TagHyperboloid: KindHyperboloid,
}

// Build recursively constructs a live scene graph rooted at an ARRAY
// literal, registering every node it creates in reg. Children carrying an
// unrecognized tag are skipped; the parent's Children slice in the built
// Array simply omits them, which is the Go equivalent of the "count
// adjustment" called for when the literal format gains tags the builder
// does not know about.
func Build(reg *Registry, lit *Record) (*Array, error) {
	if lit == nil {
		logger.Error(ErrMalformedScene)
		return nil, ErrMalformedScene
	}
	if lit.Tag != TagArray {
		logger.Errorf("build root must be an array, got tag %d: %s", lit.Tag, ErrMalformedScene)
		return nil, ErrMalformedScene
	}
	obj, err := buildArray(reg, lit)
	if err != nil {
		logger.Errorf("building %q: %s", lit.Name, err)
		return nil, err
	}
	logger.Debugf("built array %q with %d children", lit.Name, len(lit.Children))
	return obj, nil
}

func buildArray(reg *Registry, lit *Record) (*Array, error) {
	a := NewArray(lit.Name, lit.Local)
	a.Anim = lit.Anim
	a.userData = lit.User
	a.Relations = lit.Relations
	if err := reg.addArray(a); err != nil {
		return nil, err
	}

	for _, childLit := range lit.Children {
		child, err := buildNode(reg, childLit)
		if err != nil {
			return nil, err
		}
		if child == nil {
			// Unsupported tag: skip, parent ends up with fewer
			// children than the literal listed.
			continue
		}
		a.AddChild(child)
	}

	return a, nil
}

// buildNode dispatches on tag, returning (nil, nil) for a tag this builder
// does not recognize rather than an error.
func buildNode(reg *Registry, lit *Record) (Object, error) {
	if lit == nil {
		return nil, ErrMalformedScene
	}
	switch lit.Tag {
	case TagArray:
		return buildArray(reg, lit)
	case TagCamera:
		return buildCamera(reg, lit)
	case TagLight:
		return buildLight(reg, lit)
	case TagPlane, TagCylinder, TagSphere, TagCone, TagParaboloid, TagHyperboloid:
		return buildSurface(reg, lit)
	default:
		return nil, nil
	}
}

func buildCamera(reg *Registry, lit *Record) (*Camera, error) {
	if lit.Pov < 2*ClipThreshold {
		return nil, ErrMalformedScene
	}
	c := NewCamera(lit.Name, lit.Local, lit.Pov)
	c.Anim = lit.Anim
	c.userData = lit.User
	c.AmbientColor = lit.AmbientColor
	c.AmbientIntensity = lit.AmbientIntensity
	c.MoveDelta = lit.MoveDelta
	c.RotateDelta = lit.RotateDelta
	if err := reg.addCamera(c); err != nil {
		return nil, err
	}
	return c, nil
}

func buildLight(reg *Registry, lit *Record) (*Light, error) {
	l := NewLight(lit.Name, lit.Local)
	l.Anim = lit.Anim
	l.userData = lit.User
	l.Color = lit.Color
	l.Lum = lit.Lum
	l.Attenuation = lit.Attenuation
	if err := reg.addLight(l); err != nil {
		return nil, err
	}
	return l, nil
}

func buildSurface(reg *Registry, lit *Record) (*Surface, error) {
	kind, ok := tagToKind[lit.Tag]
	if !ok {
		return nil, ErrMalformedScene
	}
	if lit.Outer.Material == nil {
		return nil, ErrMalformedScene
	}
	s := NewSurface(lit.Name, kind, lit.Local, lit.ClipBox, lit.Outer, lit.Inner)
	s.Anim = lit.Anim
	s.userData = lit.User
	s.Sci, s.Scj, s.Sck = lit.Sci, lit.Scj, lit.Sck
	s.Ratio = lit.Ratio
	s.Param = lit.Param
	s.Hyp = lit.Hyp
	if err := reg.addSurface(s); err != nil {
		return nil, err
	}
	return s, nil
}
