package tracer

import (
	"testing"

	"github.com/zouzias/QuadRay-engine/object"
	"github.com/zouzias/QuadRay-engine/types"
)

func plainSide() object.Side {
	return object.Side{
		Material: &object.Material{Tag: object.MaterialPlain, Diffuse: types.XYZ(1, 0, 0)},
		UVScale:  types.Vec2{1, 1},
	}
}

func unitSphere(name string, local types.Transform3D) *object.Surface {
	return object.NewSurface(name, object.KindSphere, local,
		types.AABB{Min: types.XYZ(-1, -1, -1), Max: types.XYZ(1, 1, 1)}, plainSide(), object.Side{})
}

func TestPointInsideSurfaceUsesOwnWorldInverseNotTrnodes(t *testing.T) {
	// The clipper's trnode is its non-trivial ancestor, not itself, so the
	// naive "use the trnode's inverse" shortcut would test against the
	// ancestor's origin instead of the clipper's own world position.
	// A 45-degree turn about X makes the ancestor non-trivial while leaving
	// the clipper's offset along X, and so its world center, unchanged.
	ancestor := object.NewArray("ancestor", types.Transform3D{Scale: types.XYZ(1, 1, 1), Rotation: types.XYZ(45, 0, 0), Position: types.XYZ(10, 0, 0)})
	clip := unitSphere("clip", types.Transform3D{Scale: types.XYZ(1, 1, 1), Position: types.XYZ(3, 0, 0)})
	ancestor.AddChild(clip)

	if err := object.UpdateTree(ancestor, 0, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := object.UpdatePhase1(clip, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clip.TrNode != ancestor {
		t.Fatal("expected the trivial clipper's trnode to be its ancestor, not itself")
	}

	if !pointInsideSurface(clip, types.XYZ(13, 0, 0)) {
		t.Fatal("expected the clipper's own world center (13,0,0) to be inside it")
	}
	if pointInsideSurface(clip, types.XYZ(10, 0, 0)) {
		t.Fatal("expected the ancestor's origin (10,0,0), 3 units outside the clipper's unit sphere, to be outside it")
	}
}

func TestPointInsideSurfaceAppliesOwnTranslationWhenTrnodeless(t *testing.T) {
	root := object.NewArray("root", types.Ident3D())
	clip := unitSphere("clip", types.Transform3D{Scale: types.XYZ(1, 1, 1), Position: types.XYZ(5, 0, 0)})
	root.AddChild(clip)

	if err := object.UpdateTree(root, 0, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := object.UpdatePhase1(clip, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !pointInsideSurface(clip, types.XYZ(5, 0, 0)) {
		t.Fatal("expected the clipper's own world center (5,0,0) to be inside it")
	}
	if pointInsideSurface(clip, types.XYZ(0, 0, 0)) {
		t.Fatal("expected the world origin, 5 units away from the translated clipper, to be outside it")
	}
}

func TestClippedAppliesMinusOuterAgainstClippersOwnFrame(t *testing.T) {
	root := object.NewArray("root", types.Ident3D())
	ball := unitSphere("ball", types.Ident3D())
	tool := unitSphere("tool", types.Transform3D{Scale: types.XYZ(1, 1, 1), Position: types.XYZ(0.5, 0, 0)})
	root.AddChild(ball)
	root.AddChild(tool)
	root.Relations = []object.Relation{{Obj1: 0, Kind: object.MinusOuter, Obj2: 1}}

	if err := object.UpdateTree(root, 0, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := object.UpdatePhase1(ball, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := object.UpdatePhase1(tool, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Inside tool's overlap with ball: carved away.
	if !clipped(ball, types.XYZ(1, 0, 0)) {
		t.Fatal("expected the point inside the overlapping tool sphere to be clipped away")
	}
	// Inside ball but well outside tool: not clipped.
	if clipped(ball, types.XYZ(-0.9, 0, 0)) {
		t.Fatal("expected a point outside the tool sphere to survive the MINUS_OUTER clip")
	}
}
