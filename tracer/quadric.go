package tracer

import (
	"math"

	"github.com/zouzias/QuadRay-engine/object"
	"github.com/zouzias/QuadRay-engine/types"
)

// toLocal transforms a world-space ray into the frame a surface's analytic
// equation is expressed in, using the surface's own inverse world matrix.
func toLocal(s *object.Surface, origin, dir types.Vec3) (types.Vec3, types.Vec3) {
	inv := s.WorldInverse()
	return inv.MulPoint(origin), inv.MulDir(dir)
}

// hit is one candidate ray/surface intersection.
type hit struct {
	t      float32
	normal types.Vec3
	local  types.Vec3
}

const noHitT = float32(math.MaxFloat32)

// intersect dispatches on surface kind and returns the nearest valid root
// within [tMin, tMax] together with the local-frame hit point and normal,
// or ok == false when the ray misses or every root in range falls outside
// the clip-box axes checked for the surface's kind (see withinClip and
// withinAxialClip; spheres are not clipped by their box).
func intersect(s *object.Surface, origin, dir types.Vec3, tMin, tMax float32) (hit, bool) {
	lo, ld := toLocal(s, origin, dir)

	switch s.SurfaceKind {
	case object.KindPlane:
		return intersectPlane(s, lo, ld, tMin, tMax)
	default:
		return intersectQuadric(s, lo, ld, tMin, tMax)
	}
}

func intersectPlane(s *object.Surface, o, d types.Vec3, tMin, tMax float32) (hit, bool) {
	if absf(d[2]) < 1e-8 {
		return hit{}, false
	}
	t := -o[2] / d[2]
	if t < tMin || t > tMax {
		return hit{}, false
	}
	local := o.Add(d.Mul(t))
	if !withinClip(s.ClipBox, local, 2) {
		return hit{}, false
	}
	n := types.XYZ(0, 0, 1)
	if d[2] > 0 {
		n = n.Neg()
	}
	return hit{t: t, normal: n, local: local}, true
}

// quadricCoeffs returns the (A, B, C) coefficients of the surface's
// implicit quadratic in t along o + t*d.
func quadricCoeffs(s *object.Surface, o, d types.Vec3) (a, b, c float32) {
	switch s.SurfaceKind {
	case object.KindSphere:
		sci, scj, sck := nonZero(s.Sci, 1), nonZero(s.Scj, 1), nonZero(s.Sck, 1)
		a = sci*d[0]*d[0] + scj*d[1]*d[1] + sck*d[2]*d[2]
		b = 2 * (sci*o[0]*d[0] + scj*o[1]*d[1] + sck*o[2]*d[2])
		c = sci*o[0]*o[0] + scj*o[1]*o[1] + sck*o[2]*o[2] - 1
	case object.KindCylinder:
		sci, scj := nonZero(s.Sci, 1), nonZero(s.Scj, 1)
		a = sci*d[0]*d[0] + scj*d[1]*d[1]
		b = 2 * (sci*o[0]*d[0] + scj*o[1]*d[1])
		c = sci*o[0]*o[0] + scj*o[1]*o[1] - 1
	case object.KindCone:
		r2 := s.Ratio * s.Ratio
		a = d[0]*d[0] + d[1]*d[1] - r2*d[2]*d[2]
		b = 2 * (o[0]*d[0] + o[1]*d[1] - r2*o[2]*d[2])
		c = o[0]*o[0] + o[1]*o[1] - r2*o[2]*o[2]
	case object.KindParaboloid:
		a = d[0]*d[0] + d[1]*d[1]
		b = 2*(o[0]*d[0]+o[1]*d[1]) - s.Param*d[2]
		c = o[0]*o[0] + o[1]*o[1] - s.Param*o[2]
	case object.KindHyperboloid:
		r2 := s.Ratio * s.Ratio
		a = d[0]*d[0] + d[1]*d[1] - r2*d[2]*d[2]
		b = 2 * (o[0]*d[0] + o[1]*d[1] - r2*o[2]*d[2])
		c = o[0]*o[0] + o[1]*o[1] - r2*o[2]*o[2] - s.Hyp
	}
	return
}

func intersectQuadric(s *object.Surface, o, d types.Vec3, tMin, tMax float32) (hit, bool) {
	a, b, c := quadricCoeffs(s, o, d)

	var roots [2]float32
	var n int
	if absf(a) < 1e-10 {
		if absf(b) < 1e-10 {
			return hit{}, false
		}
		roots[0] = -c / b
		n = 1
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return hit{}, false
		}
		sq := sqrtf32(disc)
		roots[0] = (-b - sq) / (2 * a)
		roots[1] = (-b + sq) / (2 * a)
		n = 2
	}

	best := hit{}
	found := false
	for i := 0; i < n; i++ {
		t := roots[i]
		if t < tMin || t > tMax {
			continue
		}
		local := o.Add(d.Mul(t))
		if !withinAxialClip(s, local) {
			continue
		}
		if !found || t < best.t {
			best = hit{t: t, normal: quadricNormal(s, local), local: local}
			found = true
		}
	}
	return best, found
}

// withinAxialClip applies the clip box on the axis/axes the quadric's own
// equation does not already bound (z for cylinder/cone/paraboloid/
// hyperboloid).
func withinAxialClip(s *object.Surface, local types.Vec3) bool {
	switch s.SurfaceKind {
	case object.KindSphere:
		return true
	default:
		return local[2] >= s.ClipBox.Min[2] && local[2] <= s.ClipBox.Max[2]
	}
}

func withinClip(box types.AABB, p types.Vec3, skipAxis int) bool {
	for axis := 0; axis < 3; axis++ {
		if axis == skipAxis {
			continue
		}
		if p[axis] < box.Min[axis] || p[axis] > box.Max[axis] {
			return false
		}
	}
	return true
}

func quadricNormal(s *object.Surface, p types.Vec3) types.Vec3 {
	switch s.SurfaceKind {
	case object.KindSphere:
		sci, scj, sck := nonZero(s.Sci, 1), nonZero(s.Scj, 1), nonZero(s.Sck, 1)
		return types.XYZ(sci*p[0], scj*p[1], sck*p[2]).Normalize()
	case object.KindCylinder:
		sci, scj := nonZero(s.Sci, 1), nonZero(s.Scj, 1)
		return types.XYZ(sci*p[0], scj*p[1], 0).Normalize()
	case object.KindCone:
		r2 := s.Ratio * s.Ratio
		return types.XYZ(p[0], p[1], -r2*p[2]).Normalize()
	case object.KindParaboloid:
		return types.XYZ(p[0], p[1], -s.Param/2).Normalize()
	case object.KindHyperboloid:
		r2 := s.Ratio * s.Ratio
		return types.XYZ(p[0], p[1], -r2*p[2]).Normalize()
	default:
		return types.XYZ(0, 0, 1)
	}
}

// clipped reports whether worldPoint (on s's own surface) falls inside
// one of s's custom clippers, evaluating MINUS_INNER/MINUS_OUTER semantics
// and accumulation-group "outside any of these" short-circuiting.
func clipped(s *object.Surface, worldPoint types.Vec3) bool {
	groupOutside := map[int]bool{}
	for e := s.CustomClippers; e != nil; e = e.Next {
		if e.Kind != object.ClipperSurface {
			continue
		}
		inside := pointInsideSurface(e.Surface, worldPoint)
		var carves bool
		switch e.Relation {
		case object.MinusOuter:
			carves = inside
		case object.MinusInner:
			carves = !inside
		}
		if e.AccumGroup == 0 {
			if carves {
				return true
			}
			continue
		}
		if !carves {
			groupOutside[e.AccumGroup] = true
		} else if _, seen := groupOutside[e.AccumGroup]; !seen {
			groupOutside[e.AccumGroup] = false
		}
	}
	for _, outside := range groupOutside {
		if !outside {
			return true
		}
	}
	return false
}

func pointInsideSurface(s *object.Surface, worldPoint types.Vec3) bool {
	local := s.WorldInverse().MulPoint(worldPoint)
	switch s.SurfaceKind {
	case object.KindPlane:
		return local[2] <= 0 && withinClip(s.ClipBox, local, 2)
	default:
		_, _, c := quadricCoeffs(s, local, types.Vec3{})
		return c <= 0 && withinAxialClip(s, local)
	}
}

func nonZero(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrtf32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
