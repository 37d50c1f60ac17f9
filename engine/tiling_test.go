package engine

import (
	"math"
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

func builtCamera(t *testing.T, pos types.Vec3, pov float32) *object.Camera {
	t.Helper()
	root := object.NewArray("root", types.Ident3D())
	cam := object.NewCamera("cam", types.Transform3D{Scale: types.XYZ(1, 1, 1), Position: pos}, pov)
	root.AddChild(cam)
	if err := object.UpdateTree(root, 0, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error building camera: %v", err)
	}
	return cam
}

func builtSphere(t *testing.T, pos types.Vec3) *object.Surface {
	t.Helper()
	root := object.NewArray("root", types.Ident3D())
	s := object.NewSurface("ball", object.KindSphere,
		types.Transform3D{Scale: types.XYZ(1, 1, 1), Position: pos},
		types.AABB{Min: types.XYZ(-1, -1, -1), Max: types.XYZ(1, 1, 1)},
		plainSide(), object.Side{})
	root.AddChild(s)
	if err := object.UpdateTree(root, 0, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error building sphere: %v", err)
	}
	if err := object.UpdatePhase1(s, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error in phase 1: %v", err)
	}
	return s
}

func TestScreenProjectorRoundTrip(t *testing.T) {
	cam := builtCamera(t, types.XYZ(0, 0, -6), 4)
	proj := newScreenProjector(cam, 200, 100)

	for _, px := range []float32{0, 50, 199} {
		for _, py := range []float32{0, 50, 99} {
			dir := proj.rayDirection(px, py)
			world := cam.Position().Add(dir.Mul(10))
			gotX, gotY, ok := proj.project(world)
			if !ok {
				t.Fatalf("expected projection of a point along its own ray to succeed at (%v,%v)", px, py)
			}
			if absDiff(gotX, px) > 0.01 || absDiff(gotY, py) > 0.01 {
				t.Fatalf("expected rayDirection/project to round-trip at (%v,%v); got (%v,%v)", px, py, gotX, gotY)
			}
		}
	}
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestBuildTileGridPlacesNearbySphere(t *testing.T) {
	cam := builtCamera(t, types.XYZ(0, 0, -6), 4)
	sphere := builtSphere(t, types.XYZ(0, 0, 0))

	grid := BuildTileGrid(cam, []*object.Surface{sphere}, 64, 64, 16, 16)

	// The sphere sits dead ahead of the camera, so the tile at the center
	// of the grid must list it.
	centerCol, centerRow := grid.Cols/2, grid.Rows/2
	if got := grid.at(centerCol, centerRow); len(got) != 1 || got[0] != sphere {
		t.Fatalf("expected the center tile to contain the sphere; got %v", got)
	}
}

func TestBuildTileGridTouchesEveryTileWhenUnbounded(t *testing.T) {
	cam := builtCamera(t, types.XYZ(0, 0, -6), 4)

	root := object.NewArray("root", types.Ident3D())
	inf := float32(math.Inf(1))
	plane := object.NewSurface("floor", object.KindPlane, types.Ident3D(),
		types.AABB{Min: types.XYZ(-inf, -inf, 0), Max: types.XYZ(inf, inf, 0)},
		plainSide(), object.Side{})
	root.AddChild(plane)
	if err := object.UpdateTree(root, 0, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := object.UpdatePhase1(plane, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grid := BuildTileGrid(cam, []*object.Surface{plane}, 32, 32, 16, 16)
	for row := uint32(0); row < grid.Rows; row++ {
		for col := uint32(0); col < grid.Cols; col++ {
			if tiles := grid.at(col, row); len(tiles) != 1 {
				t.Fatalf("expected an unbounded plane to touch every tile; tile (%d,%d) has %d entries", col, row, len(tiles))
			}
		}
	}
}

func TestSortFrontToBackOrdersByNearDistance(t *testing.T) {
	camPos := types.XYZ(0, 0, -6)
	near := builtSphere(t, types.XYZ(0, 0, 0))
	far := builtSphere(t, types.XYZ(0, 0, 10))

	got := sortFrontToBack([]*object.Surface{far, near}, camPos)
	if got[0] != near || got[1] != far {
		t.Fatalf("expected the nearer sphere first; got order %v, %v", got[0].Name(), got[1].Name())
	}
}

func TestSortLightsOrdersByDistanceOverIntensity(t *testing.T) {
	root := object.NewArray("root", types.Ident3D())
	dim := object.NewLight("dim", types.Transform3D{Scale: types.XYZ(1, 1, 1), Position: types.XYZ(0, 0, 1)})
	dim.Lum = [2]float32{0, 1}
	bright := object.NewLight("bright", types.Transform3D{Scale: types.XYZ(1, 1, 1), Position: types.XYZ(0, 0, 1)})
	bright.Lum = [2]float32{0, 100}
	root.AddChild(dim)
	root.AddChild(bright)
	if err := object.UpdateTree(root, 0, object.DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := SortLights([]*object.Light{dim, bright}, types.XYZ(0, 0, 0))
	if got[0].Name() != "bright" {
		t.Fatalf("expected the brighter light to sort first for equal distance; got %s", got[0].Name())
	}
}
