package cmd

import (
	"math"

	"github.com/zouzias/QuadRay-engine/object"
	"github.com/zouzias/QuadRay-engine/types"
)

// demoCount is the number of built-in scene literals -d accepts (0-based).
const demoCount = 2

// buildDemo returns the in-memory scene literal for demo index idx: 1 selects
// the two-sphere demo, any other value the single-sphere demo. There is no
// textual scene format to load from
// disk, so the interactive/render-frame subcommands always start from one
// of these literals.
func buildDemo(idx int) *object.Record {
	switch idx {
	case 1:
		return twoSphereDemo()
	default:
		return singleSphereDemo()
	}
}

func plainMaterial(diffuse types.Vec3, reflect float32) *object.Material {
	return &object.Material{
		Tag:      object.MaterialPlain,
		Diffuse:  diffuse,
		Specular: types.XYZ(1, 1, 1),
		Power:    32,
		Reflect:  reflect,
	}
}

func unitSide(m *object.Material) object.Side {
	return object.Side{Material: m, UVScale: types.Vec2{1, 1}}
}

func singleSphereDemo() *object.Record {
	sphereMat := plainMaterial(types.XYZ(0.8, 0.2, 0.2), 0.1)
	floorMat := plainMaterial(types.XYZ(0.4, 0.4, 0.4), 0)

	return &object.Record{
		Name: "root",
		Tag:  object.TagArray,
		Local: types.Transform3D{
			Scale: types.XYZ(1, 1, 1),
		},
		Children: []*object.Record{
			{
				Name: "cam",
				Tag:  object.TagCamera,
				Local: types.Transform3D{
					Scale:    types.XYZ(1, 1, 1),
					Position: types.XYZ(0, 0, -6),
				},
				Pov:              4,
				AmbientColor:     types.XYZ(0.05, 0.05, 0.08),
				AmbientIntensity: 1,
				MoveDelta:        types.XYZ(0.2, 0.2, 0.2),
				RotateDelta:      types.XYZ(0, 0, 3),
			},
			{
				Name: "sun",
				Tag:  object.TagLight,
				Local: types.Transform3D{
					Scale:    types.XYZ(1, 1, 1),
					Position: types.XYZ(-4, 4, -4),
				},
				Color:       types.XYZ(1, 1, 1),
				Lum:         [2]float32{0.1, 1.2},
				Attenuation: [4]float32{0, 1, 0, 0},
			},
			{
				Name: "ball",
				Tag:  object.TagSphere,
				Local: types.Transform3D{
					Scale: types.XYZ(1, 1, 1),
				},
				ClipBox: types.AABB{
					Min: types.XYZ(negInf(), negInf(), negInf()),
					Max: types.XYZ(posInf(), posInf(), posInf()),
				},
				Outer: unitSide(sphereMat),
				Inner: unitSide(sphereMat),
				Sci:   1, Scj: 1, Sck: 1,
			},
			{
				Name: "floor",
				Tag:  object.TagPlane,
				Local: types.Transform3D{
					Scale:    types.XYZ(1, 1, 1),
					Rotation: types.XYZ(90, 0, 0),
					Position: types.XYZ(0, -1.5, 0),
				},
				ClipBox: types.AABB{
					Min: types.XYZ(-8, -8, negInf()),
					Max: types.XYZ(8, 8, posInf()),
				},
				Outer: unitSide(floorMat),
				Inner: unitSide(floorMat),
				Sci:   0, Scj: 0, Sck: 1,
			},
		},
	}
}

func twoSphereDemo() *object.Record {
	lit := singleSphereDemo()
	mat := plainMaterial(types.XYZ(0.2, 0.6, 0.9), 0.3)
	lit.Children = append(lit.Children, &object.Record{
		Name: "ball2",
		Tag:  object.TagSphere,
		Local: types.Transform3D{
			Scale:    types.XYZ(0.6, 0.6, 0.6),
			Position: types.XYZ(1.6, -0.4, -0.5),
		},
		ClipBox: types.AABB{
			Min: types.XYZ(negInf(), negInf(), negInf()),
			Max: types.XYZ(posInf(), posInf(), posInf()),
		},
		Outer: unitSide(mat),
		Inner: unitSide(mat),
		Sci:   1, Scj: 1, Sck: 1,
	})
	return lit
}

func posInf() float32 { return float32(math.Inf(1)) }
func negInf() float32 { return float32(math.Inf(-1)) }
