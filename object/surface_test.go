package object

import (
	"testing"

	"github.com/zouzias/QuadRay-engine/types"
)

func trivialSurface(name string) *Surface {
	return NewSurface(name, KindSphere, types.Ident3D(),
		types.AABB{Min: types.XYZ(-1, -1, -1), Max: types.XYZ(1, 1, 1)}, plainSide(), Side{})
}

func TestAddRelationTrivialClippersPrependDirectly(t *testing.T) {
	dst := trivialSurface("dst")
	c1 := trivialSurface("c1")
	c2 := trivialSurface("c2")
	// Both clippers are their own trnode's-worth of trivial: TrNode is nil,
	// so AddRelation must not synthesize a marker for either.
	dst.AddRelation([]clipperTemplate{
		{surface: c1, relation: MinusOuter},
		{surface: c2, relation: MinusInner},
	})

	var surfaces []*Surface
	for e := dst.CustomClippers; e != nil; e = e.Next {
		if e.Kind == ClipperTrNodeMarker {
			t.Fatalf("expected no marker for trivial clippers; found one for %v", e.TrNode)
		}
		surfaces = append(surfaces, e.Surface)
	}
	if len(surfaces) != 2 {
		t.Fatalf("expected 2 clipper elements; got %d", len(surfaces))
	}
}

func TestAddRelationSharesMarkerWithinAccumSegment(t *testing.T) {
	dst := trivialSurface("dst")
	rot := NewArray("rotAncestor", types.Transform3D{Scale: types.XYZ(1, 1, 1), Rotation: types.XYZ(45, 0, 0)})

	c1 := trivialSurface("c1")
	c1.TrNode = rot
	c2 := trivialSurface("c2")
	c2.TrNode = rot

	dst.AddRelation([]clipperTemplate{
		{surface: c1, relation: MinusOuter, accumGroup: 1},
		{surface: c2, relation: MinusOuter, accumGroup: 1},
	})

	var markers int
	var surfaces []*Surface
	for e := dst.CustomClippers; e != nil; e = e.Next {
		if e.Kind == ClipperTrNodeMarker {
			markers++
			if e.TrNode != rot {
				t.Fatalf("expected marker TrNode to be the shared ancestor; got %v", e.TrNode)
			}
			continue
		}
		surfaces = append(surfaces, e.Surface)
	}
	if markers != 1 {
		t.Fatalf("expected exactly 1 marker shared by both clippers; got %d", markers)
	}
	if len(surfaces) != 2 {
		t.Fatalf("expected both clippers to be present under the shared marker; got %d", len(surfaces))
	}
}

func TestAddRelationSeparatesDifferentAccumGroups(t *testing.T) {
	dst := trivialSurface("dst")
	rot := NewArray("rotAncestor", types.Transform3D{Scale: types.XYZ(1, 1, 1), Rotation: types.XYZ(45, 0, 0)})

	c1 := trivialSurface("c1")
	c1.TrNode = rot
	c2 := trivialSurface("c2")
	c2.TrNode = rot

	dst.AddRelation([]clipperTemplate{
		{surface: c1, relation: MinusOuter, accumGroup: 1},
		{surface: c2, relation: MinusOuter, accumGroup: 2},
	})

	markers := 0
	for e := dst.CustomClippers; e != nil; e = e.Next {
		if e.Kind == ClipperTrNodeMarker {
			markers++
		}
	}
	if markers != 2 {
		t.Fatalf("expected a separate marker per accumulation group; got %d", markers)
	}
}

func TestNonTrivialOuterClippersFiltersByKindAndTrNode(t *testing.T) {
	dst := trivialSurface("dst")
	dst.TrNode = dst

	sphereClip := trivialSurface("sphereClip")
	sphereClip.TrNode = dst
	planeClip := NewSurface("planeClip", KindPlane, types.Ident3D(),
		types.AABB{Min: types.XYZ(-1, -1, 0), Max: types.XYZ(1, 1, 0)}, plainSide(), Side{})
	planeClip.TrNode = dst
	innerClip := trivialSurface("innerClip")
	innerClip.TrNode = dst
	otherTrNodeClip := trivialSurface("otherTrNodeClip")
	otherTrNodeClip.TrNode = trivialSurface("someOtherTrNode")

	dst.AddRelation([]clipperTemplate{
		{surface: sphereClip, relation: MinusOuter},
		{surface: planeClip, relation: MinusOuter},
		{surface: innerClip, relation: MinusInner},
		{surface: otherTrNodeClip, relation: MinusOuter},
	})

	got := dst.nonTrivialOuterClippers()
	if len(got) != 1 || got[0] != sphereClip {
		names := make([]string, len(got))
		for i, s := range got {
			names[i] = s.Name()
		}
		t.Fatalf("expected only sphereClip to pass the kind/relation/trnode filter; got %v", names)
	}
}
