package object

import (
	"math"
	"testing"

	"github.com/zouzias/QuadRay-engine/types"
)

func TestExtractAxisMapIdentity(t *testing.T) {
	am, ok := extractAxisMap(types.Ident4())
	if !ok {
		t.Fatal("expected identity matrix to be axis-aligned")
	}
	if am.Map != [3]int8{0, 1, 2} || am.Sgn != [3]float32{1, 1, 1} {
		t.Fatalf("unexpected axis map: %+v", am)
	}
}

func TestExtractAxisMapPermutation(t *testing.T) {
	// Rotate -90 degrees about Z: world X reads from local Y, world Y
	// reads from local X with a sign flip, so local X lands on world -Y
	// and local Y on world +X.
	m := types.RotationZ4(-90)
	am, ok := extractAxisMap(m)
	if !ok {
		t.Fatal("expected 90-degree rotation to remain axis-aligned")
	}
	if am.Map[0] != 1 || am.Sgn[0] != -1 {
		t.Fatalf("expected local axis 0 to map to world axis 1 with sign -1; got map=%d sgn=%v", am.Map[0], am.Sgn[0])
	}
	if am.Map[1] != 0 || am.Sgn[1] != 1 {
		t.Fatalf("expected local axis 1 to map to world axis 0 with sign 1; got map=%d sgn=%v", am.Map[1], am.Sgn[1])
	}
}

func TestExtractAxisMapRejectsGeneralRotation(t *testing.T) {
	m := types.RotationZ4(45)
	if _, ok := extractAxisMap(m); ok {
		t.Fatal("expected 45-degree rotation to not be axis-aligned")
	}
}

func TestSphereMinMaxWithinUnitSphere(t *testing.T) {
	// A clip box well inside the unit sphere leaves every axis's effective
	// radius from the other two above the clip extent, so nothing clamps.
	src := types.AABB{Min: types.XYZ(-0.1, -0.1, -0.1), Max: types.XYZ(0.1, 0.1, 0.1)}
	bbox, cbox := sphereMinMax(src)
	if bbox.Min != src.Min || bbox.Max != src.Max {
		t.Fatalf("expected a clip box well inside the unit sphere to leave bbox unchanged; got %+v", bbox)
	}
	if cbox.Min != src.Min || cbox.Max != src.Max {
		t.Fatalf("expected a clip box well inside the unit sphere to leave cbox unchanged; got %+v", cbox)
	}
}

func TestClampRadialWidensCboxToInfinity(t *testing.T) {
	src := types.AABB{Min: types.XYZ(-5, -5, 0), Max: types.XYZ(5, 5, 2)}
	bbox, cbox := clampRadial(src, 1, 2)
	if bbox.Min[0] != -1 || bbox.Max[0] != 1 {
		t.Fatalf("expected bbox X clamped to radius; got %+v", bbox)
	}
	if !math.IsInf(float64(cbox.Min[0]), -1) || !math.IsInf(float64(cbox.Max[0]), 1) {
		t.Fatalf("expected cbox X widened to +-Inf once the clip exceeds the radius; got %+v", cbox)
	}
}

func TestAdjustMinMaxPlaneFlattensZ(t *testing.T) {
	src := types.AABB{Min: types.XYZ(-2, -3, -4), Max: types.XYZ(2, 3, 4)}
	bbox, cbox := adjustMinMax(KindPlane, &Surface{}, src)
	if bbox.Min[2] != 0 || bbox.Max[2] != 0 {
		t.Fatalf("expected plane bbox flattened on Z; got %+v", bbox)
	}
	if !math.IsInf(float64(cbox.Min[2]), -1) || !math.IsInf(float64(cbox.Max[2]), 1) {
		t.Fatalf("expected plane cbox unbounded on Z; got %+v", cbox)
	}
}

func TestGenerateShapeSkipsInfiniteClipBox(t *testing.T) {
	s := &Surface{SurfaceKind: KindPlane}
	s.CBox = types.AABB{Min: types.XYZ(-1, -1, float32(math.Inf(-1))), Max: types.XYZ(1, 1, float32(math.Inf(1)))}
	if err := generateShape(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.shape.Verts) != 0 {
		t.Fatalf("expected no polyhedron for an unbounded clip box; got %d verts", len(s.shape.Verts))
	}
}

func TestGenerateShapeBoundsPlane(t *testing.T) {
	s := &Surface{SurfaceKind: KindPlane}
	s.CBox = types.AABB{Min: types.XYZ(-1, -1, 0), Max: types.XYZ(1, 1, 0)}
	if err := generateShape(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.shape.Verts) != 4 {
		t.Fatalf("expected 4 verts for a degenerate planar box; got %d", len(s.shape.Verts))
	}
	computeBoundingSphere(s)
	if s.SphereRad <= 0 {
		t.Fatalf("expected a positive bounding sphere radius; got %v", s.SphereRad)
	}
}

func TestComputeBoundingSphereEmptyShapeIsInfinite(t *testing.T) {
	s := &Surface{}
	computeBoundingSphere(s)
	if !math.IsInf(float64(s.SphereRad), 1) {
		t.Fatalf("expected infinite bounding sphere for an unbounded surface; got %v", s.SphereRad)
	}
}
