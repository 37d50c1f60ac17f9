package object

import (
	"testing"

	"github.com/zouzias/QuadRay-engine/types"
)

func plainSide() Side {
	return Side{
		Material: &Material{Tag: MaterialPlain, Diffuse: types.XYZ(1, 0, 0)},
		UVScale:  types.Vec2{1, 1},
	}
}

func TestBuildRejectsNonArrayRoot(t *testing.T) {
	reg := NewRegistry(1 << 16)
	_, err := Build(reg, &Record{Tag: TagSphere})
	if err != ErrMalformedScene {
		t.Fatalf("expected ErrMalformedScene; got %v", err)
	}
}

func TestBuildRejectsNilRoot(t *testing.T) {
	reg := NewRegistry(1 << 16)
	if _, err := Build(reg, nil); err != ErrMalformedScene {
		t.Fatalf("expected ErrMalformedScene; got %v", err)
	}
}

func TestBuildSkipsUnsupportedTags(t *testing.T) {
	reg := NewRegistry(1 << 16)
	lit := &Record{
		Name: "root",
		Tag:  TagArray,
		Children: []*Record{
			{Tag: Tag(99)}, // unrecognized, should be skipped
			{Name: "cam", Tag: TagCamera, Pov: 4},
		},
	}

	root, err := Build(reg, lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child after skipping unsupported tag; got %d", len(root.Children))
	}
	if len(reg.Cameras) != 1 {
		t.Fatalf("expected 1 registered camera; got %d", len(reg.Cameras))
	}
}

func TestBuildCameraRejectsLowPov(t *testing.T) {
	reg := NewRegistry(1 << 16)
	lit := &Record{
		Tag: TagArray,
		Children: []*Record{
			{Name: "cam", Tag: TagCamera, Pov: ClipThreshold},
		},
	}
	if _, err := Build(reg, lit); err != ErrMalformedScene {
		t.Fatalf("expected ErrMalformedScene for pov below threshold; got %v", err)
	}
}

func TestBuildSurfaceRequiresOuterMaterial(t *testing.T) {
	reg := NewRegistry(1 << 16)
	lit := &Record{
		Tag: TagArray,
		Children: []*Record{
			{Name: "ball", Tag: TagSphere},
		},
	}
	if _, err := Build(reg, lit); err != ErrMalformedScene {
		t.Fatalf("expected ErrMalformedScene for missing outer material; got %v", err)
	}
}

func TestBuildFullScene(t *testing.T) {
	reg := NewRegistry(1 << 16)
	lit := &Record{
		Name: "root",
		Tag:  TagArray,
		Children: []*Record{
			{Name: "cam", Tag: TagCamera, Pov: 4},
			{Name: "sun", Tag: TagLight, Color: types.XYZ(1, 1, 1), Lum: [2]float32{0.2, 1}},
			{
				Name:    "ball",
				Tag:     TagSphere,
				Outer:   plainSide(),
				ClipBox: types.AABB{Min: types.XYZ(-1, -1, -1), Max: types.XYZ(1, 1, 1)},
			},
			{
				Name: "group",
				Tag:  TagArray,
				Children: []*Record{
					{
						Name:    "ball2",
						Tag:     TagSphere,
						Outer:   plainSide(),
						ClipBox: types.AABB{Min: types.XYZ(-1, -1, -1), Max: types.XYZ(1, 1, 1)},
					},
				},
			},
		},
	}

	root, err := Build(reg, lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 4 {
		t.Fatalf("expected 4 children; got %d", len(root.Children))
	}
	if len(reg.Cameras) != 1 || len(reg.Lights) != 1 || len(reg.Surfaces) != 2 || len(reg.Arrays) != 2 {
		t.Fatalf("unexpected registry population: cams=%d lights=%d surfaces=%d arrays=%d",
			len(reg.Cameras), len(reg.Lights), len(reg.Surfaces), len(reg.Arrays))
	}
}
