package object

import (
	"math"

	"github.com/zouzias/QuadRay-engine/types"
)

var inf = float32(math.Inf(1))

// UpdatePhase1 recomputes one surface's axis map, bounding/clipping boxes,
// generated polyhedron, bounding sphere and inverse matrix. Arrays get
// only the axis-map, bound-widening and inverse-matrix steps.
// Every call operates on a single object's own fields and never touches a
// sibling's state, so Phase 1 may run once per surface/array across a pool
// of workers with no synchronization.
func UpdatePhase1(obj Object, cfg Config) error {
	switch o := obj.(type) {
	case *Surface:
		return updateSurfacePhase1(o, cfg)
	case *Array:
		updateArrayPhase1(o)
		return nil
	default:
		return nil
	}
}

// extractAxisMap: if the object's full matrix is
// axis-aligned, derive (map, sgn) and report true, with Map[i] the world
// axis local axis i lands on and Sgn[i] its sign; otherwise return a zero
// AxisMap and false (the caller substitutes the identity map and the object
// keeps its general 4x4 matrix). A component negligible next to the largest
// one in its row (such as float32 cos(90)) counts as zero.
func extractAxisMap(m types.Mat4) (types.AxisMap, bool) {
	var am types.AxisMap
	used := [3]bool{}
	for row := 0; row < 3; row++ {
		var rowMax float32
		for col := 0; col < 3; col++ {
			if a := absF(m[row*4+col]); a > rowMax {
				rowMax = a
			}
		}
		found := -1
		var sign float32
		for col := 0; col < 3; col++ {
			v := m[row*4+col]
			if absF(v) <= rowMax*1e-6 {
				continue
			}
			// A row may only have one non-zero component for the
			// matrix to be an axis remap.
			if found != -1 {
				return types.AxisMap{}, false
			}
			found = col
			if v > 0 {
				sign = 1
			} else {
				sign = -1
			}
		}
		if found == -1 || used[found] {
			return types.AxisMap{}, false
		}
		used[found] = true
		// Row "row" reads local axis "found", so that local axis lands on
		// world axis "row".
		am.Map[found] = int8(row)
		am.Sgn[found] = sign
	}
	return am, true
}

func updateSurfacePhase1(s *Surface, cfg Config) error {
	if am, ok := extractAxisMap(s.Matrix); ok {
		s.AxisMap = am
	} else {
		s.AxisMap = types.IdentAxisMap()
	}

	updateMinMax(s, cfg)

	if err := generateShape(s); err != nil {
		return err
	}
	computeBoundingSphere(s)

	// InvMatrix is always recomputed from this surface's own fully-composed
	// Matrix rather than shared from a trnode ancestor: the original
	// engine's inverse-sharing optimization assumed callers thread the
	// trnode/local split through every consumer, which this engine does
	// not do (s.Matrix is always the full world transform).
	s.InvMatrix = s.Matrix.Inv()

	return nil
}

func updateArrayPhase1(a *Array) {
	if am, ok := extractAxisMap(a.Matrix); ok {
		a.AxisMap = am
	} else {
		a.AxisMap = types.IdentAxisMap()
	}

	box := types.AABB{Min: types.Vec3{inf, inf, inf}, Max: types.Vec3{-inf, -inf, -inf}}
	any := false
	for _, c := range a.Children {
		b := c.base()
		if b.BVNode != a {
			continue
		}
		var childBox types.AABB
		switch cc := c.(type) {
		case *Surface:
			childBox = cc.BBox
		case *Array:
			childBox = cc.BBox
		default:
			continue
		}
		box = box.Union(childBox)
		any = true
	}
	if any {
		a.BBox = box
		a.CBox = box
	}

	a.InvMatrix = a.Matrix.Inv()
}

// updateMinMax recomputes a surface's bbox/cbox from its clip box and shape.
func updateMinMax(s *Surface, cfg Config) {
	hasClippers := s.CustomClippers != nil
	isOwnTrNode := s.TrNode == s

	if !hasClippers || isOwnTrNode || !cfg.Adjust {
		s.BBox, s.CBox = adjustMinMax(s.SurfaceKind, s, s.ClipBox)
		return
	}

	// Baseline bbox from shape alone, then accumulate clipper
	// adjustments into an initially unbounded cbox, then recompute final
	// bbox/cbox from the accumulated source rectangle.
	baseline, _ := adjustMinMax(s.SurfaceKind, s, s.ClipBox)
	acc := types.AABB{Min: types.Vec3{-inf, -inf, -inf}, Max: types.Vec3{inf, inf, inf}}
	for _, clip := range s.nonTrivialOuterClippers() {
		acc = accumulateClip(acc, clip)
	}
	bbox, cbox := adjustMinMax(s.SurfaceKind, s, acc)
	s.BBox = types.AABB{Min: types.MaxVec3(baseline.Min, bbox.Min), Max: types.MinVec3(baseline.Max, bbox.Max)}
	s.CBox = cbox
}

// accumulateClip asks a non-trivial outer clipper to narrow the
// accumulated source rectangle towards its own clip box.
func accumulateClip(acc types.AABB, clip *Surface) types.AABB {
	return types.AABB{
		Min: types.MaxVec3(acc.Min, clip.ClipBox.Min),
		Max: types.MinVec3(acc.Max, clip.ClipBox.Max),
	}
}

// adjustMinMax is the shape-specific bbox/cbox clamp. It is the first of
// the two real polymorphism points named in Design Notes; dispatched here
// by a type switch rather than a vtable since Go has no class hierarchy
// to exploit.
func adjustMinMax(kind Kind, s *Surface, src types.AABB) (bbox, cbox types.AABB) {
	switch kind {
	case KindPlane:
		bbox = types.AABB{
			Min: types.XYZ(src.Min[0], src.Min[1], 0),
			Max: types.XYZ(src.Max[0], src.Max[1], 0),
		}
		cbox = types.AABB{
			Min: types.XYZ(src.Min[0], src.Min[1], -inf),
			Max: types.XYZ(src.Max[0], src.Max[1], inf),
		}
		return

	case KindCylinder:
		rad := absMax(s.Sci, s.Scj)
		bbox, cbox = clampRadial(src, rad, 2)
		return

	case KindSphere:
		bbox, cbox = sphereMinMax(src)
		return

	case KindCone:
		top := absMax(src.Min[2], src.Max[2])
		rad := top * absF(s.Ratio)
		bbox, cbox = clampRadial(src, rad, 2)
		return

	case KindParaboloid:
		var top float32
		if s.Param > 0 {
			top = src.Max[2]
		} else {
			top = -src.Min[2]
		}
		if top < 0 {
			top = 0
		}
		rad := sqrtf(top * absF(s.Param))
		bbox, cbox = clampRadial(src, rad, 2)
		if s.Param > 0 {
			bbox.Min[2], cbox.Min[2] = 0, 0
		} else {
			bbox.Max[2], cbox.Max[2] = 0, 0
		}
		return

	case KindHyperboloid:
		top := absMax(src.Min[2], src.Max[2])
		rad := sqrtf(top*top*s.Ratio*s.Ratio + s.Hyp)
		bbox, cbox = clampRadial(src, rad, 2)
		return

	default:
		return src, src
	}
}

// clampRadial clamps the two axes orthogonal to axisK to ±rad, forcing the
// corresponding cbox bound to ±Inf whenever the source box exceeds the
// radius on that axis.
func clampRadial(src types.AABB, rad float32, axisK int) (bbox, cbox types.AABB) {
	bbox, cbox = src, src
	for axis := 0; axis < 3; axis++ {
		if axis == axisK {
			continue
		}
		if src.Min[axis] < -rad {
			bbox.Min[axis] = -rad
			cbox.Min[axis] = -inf
		}
		if src.Max[axis] > rad {
			bbox.Max[axis] = rad
			cbox.Max[axis] = inf
		}
	}
	return
}

// sphereMinMax implements the sphere adjust_minmax rule: for each axis,
// derive an effective radius on the other two axes from the clip extent
// already applied on that axis.
func sphereMinMax(src types.AABB) (bbox, cbox types.AABB) {
	bbox, cbox = src, src
	r := float32(1.0) // unit sphere in local frame; scale folded via matrix
	for axis := 0; axis < 3; axis++ {
		top := absMax(src.Min[axis], src.Max[axis])
		if top > r {
			top = r
		}
		other := sqrtf(r*r - top*top)
		for a2 := 0; a2 < 3; a2++ {
			if a2 == axis {
				continue
			}
			if src.Min[a2] < -other {
				bbox.Min[a2] = -other
				cbox.Min[a2] = -inf
			}
			if src.Max[a2] > other {
				bbox.Max[a2] = other
				cbox.Max[a2] = inf
			}
		}
	}
	return
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func absMax(a, b float32) float32 {
	return math32Max(absF(a), absF(b))
}

func math32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func sqrtf(v float32) float32 {
	if v < 0 {
		return 0
	}
	return float32(math.Sqrt(float64(v)))
}

// generateShape produces the bounding polyhedron. Surfaces whose clip box
// is infinite on any axis generate no polyhedron; the surface still
// participates in intersection tests over its full analytic extent.
func generateShape(s *Surface) error {
	box := s.CBox
	if isInfinite(box) {
		s.shape = Shape{}
		return nil
	}

	local := boxCorners(box)
	if len(local) > VertsLimit {
		return ErrLimitExceeded
	}

	// Vertices stay in this surface's own local frame; every consumer
	// (tiling, tracing) applies s.Matrix itself, so there is no need to
	// pre-transform them here.
	verts := make([]types.Vec3, len(local))
	copy(verts, local)

	edges, faces := boxTopology(len(verts), 0)
	if len(edges) > EdgesLimit || len(faces) > FacesLimit {
		return ErrLimitExceeded
	}

	s.shape = Shape{Verts: verts, Edges: edges, Faces: faces}
	return nil
}

func isInfinite(box types.AABB) bool {
	for i := 0; i < 3; i++ {
		if math.IsInf(float64(box.Min[i]), -1) || math.IsInf(float64(box.Max[i]), 1) {
			return true
		}
	}
	return false
}

// boxCorners returns the (4 for a degenerate Z-planar box, 8 otherwise)
// corners of an AABB.
func boxCorners(b types.AABB) []types.Vec3 {
	if b.Min[2] == b.Max[2] {
		z := b.Min[2]
		return []types.Vec3{
			{b.Min[0], b.Min[1], z},
			{b.Max[0], b.Min[1], z},
			{b.Max[0], b.Max[1], z},
			{b.Min[0], b.Max[1], z},
		}
	}
	var out []types.Vec3
	for _, x := range [2]float32{b.Min[0], b.Max[0]} {
		for _, y := range [2]float32{b.Min[1], b.Max[1]} {
			for _, z := range [2]float32{b.Min[2], b.Max[2]} {
				out = append(out, types.Vec3{x, y, z})
			}
		}
	}
	return out
}

// boxTopology builds the edge/face index lists for a 4- or 8-vertex box,
// labelling each edge with the local axis it runs along (or
// NoDominantAxis when the caller has already flagged world-space
// vertices).
func boxTopology(n int, forceAxis int8) ([]Edge, []Face) {
	if n == 4 {
		axis := func(def int8) int8 {
			if forceAxis == NoDominantAxis {
				return NoDominantAxis
			}
			return def
		}
		edges := []Edge{
			{0, 1, axis(0)}, {1, 2, axis(1)}, {2, 3, axis(0)}, {3, 0, axis(1)},
		}
		faces := []Face{{Verts: [4]int{0, 1, 2, 3}, N: 4}}
		return edges, faces
	}

	// 8-vertex box ordered x{0,1} * y{0,1} * z{0,1} as produced by
	// boxCorners.
	idx := func(x, y, z int) int { return x*4 + y*2 + z }
	axis := func(def int8) int8 {
		if forceAxis == NoDominantAxis {
			return NoDominantAxis
		}
		return def
	}
	var edges []Edge
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			edges = append(edges, Edge{idx(x, y, 0), idx(x, y, 1), axis(2)})
		}
	}
	for x := 0; x < 2; x++ {
		for z := 0; z < 2; z++ {
			edges = append(edges, Edge{idx(x, 0, z), idx(x, 1, z), axis(1)})
		}
	}
	for y := 0; y < 2; y++ {
		for z := 0; z < 2; z++ {
			edges = append(edges, Edge{idx(0, y, z), idx(1, y, z), axis(0)})
		}
	}
	faces := []Face{
		{Verts: [4]int{idx(0, 0, 0), idx(0, 1, 0), idx(0, 1, 1), idx(0, 0, 1)}, N: 4},
		{Verts: [4]int{idx(1, 0, 0), idx(1, 1, 0), idx(1, 1, 1), idx(1, 0, 1)}, N: 4},
		{Verts: [4]int{idx(0, 0, 0), idx(1, 0, 0), idx(1, 0, 1), idx(0, 0, 1)}, N: 4},
		{Verts: [4]int{idx(0, 1, 0), idx(1, 1, 0), idx(1, 1, 1), idx(0, 1, 1)}, N: 4},
		{Verts: [4]int{idx(0, 0, 0), idx(1, 0, 0), idx(1, 1, 0), idx(0, 1, 0)}, N: 4},
		{Verts: [4]int{idx(0, 0, 1), idx(1, 0, 1), idx(1, 1, 1), idx(0, 1, 1)}, N: 4},
	}
	return edges, faces
}

// computeBoundingSphere sets the sphere's center to the centroid of the
// generated vertices and its radius to the max distance from that centroid.
// A surface with no
// generated polyhedron (unbounded) gets an infinite bounding sphere.
func computeBoundingSphere(s *Surface) {
	if len(s.shape.Verts) == 0 {
		s.SphereMid = types.Vec3{}
		s.SphereRad = inf
		return
	}
	var sum types.Vec3
	for _, v := range s.shape.Verts {
		sum = sum.Add(v)
	}
	mid := sum.Mul(1.0 / float32(len(s.shape.Verts)))
	var maxDist float32
	for _, v := range s.shape.Verts {
		d := v.Sub(mid).Len()
		if d > maxDist {
			maxDist = d
		}
	}
	s.SphereMid = mid
	s.SphereRad = maxDist
}
