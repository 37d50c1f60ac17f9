package object

import "github.com/zouzias/QuadRay-engine/types"

// NoDominantAxis is the edge/face axis-label sentinel used once vertices
// have been transformed through a trnode and no longer align with a local
// axis.
const NoDominantAxis int8 = 3

// Edge connects two polyhedron vertices by index; Axis names the local
// axis the edge runs along, or NoDominantAxis once the vertices have been
// pushed through a non-self trnode.
type Edge struct {
	A, B int
	Axis int8
}

// Face lists (up to) four vertex indices of one polyhedron face.
type Face struct {
	Verts [4]int
	N     int // number of valid entries in Verts (3 or 4)
}

// Shape is a surface's (possibly empty) bounding polyhedron: empty when the
// surface's clip box is unbounded on any axis.
type Shape struct {
	Verts []types.Vec3
	Edges []Edge
	Faces []Face
}

// Surface is one analytic primitive: Plane, Cylinder, Sphere, Cone,
// Paraboloid or Hyperboloid, sharing the same struct with shape-dependent
// coefficients and a dispatch table for the two polymorphism points named
// in Design Notes (adjustMinMax, intersect).
type Surface struct {
	Base

	SurfaceKind Kind

	// Implicit quadric coefficients in local frame.
	Sci, Scj, Sck float32

	// Shape-specific scalars: cone/hyperboloid ratio, paraboloid
	// parameter, hyperboloid hyp term.
	Ratio float32
	Param float32
	Hyp   float32

	// Local clipper box; ±Inf means "no clip on this bound".
	ClipBox types.AABB

	Outer Side
	Inner Side

	shape Shape

	BBox types.AABB
	CBox types.AABB

	SphereMid types.Vec3
	SphereRad float32

	// CustomClippers is the head of this surface's intrusive clipper
	// list, built by AddRelation during Phase 0.
	CustomClippers *ClipperElem

	nextAccumGroup int
}

func (s *Surface) Kind() Kind { return s.SurfaceKind }

// Shape exposes the generated bounding polyhedron (read-only).
func (s *Surface) Shape() Shape { return s.shape }

// NewSurface creates a surface of the given kind with its local clip box
// and materials.
func NewSurface(name string, kind Kind, local types.Transform3D, clip types.AABB, outer, inner Side) *Surface {
	return &Surface{
		Base:        Base{name: name, Local: local},
		SurfaceKind: kind,
		ClipBox:     clip,
		Outer:       outer,
		Inner:       inner,
	}
}

// AddRelation merges an incoming clipper template list into this surface's
// custom clipper list. When an incoming clipper's surface has
// its own trnode, a marker element followed by the clipper is appended at
// the end of the list unless a marker for the same trnode already exists
// within the current accumulation segment, in which case the clipper is
// inserted directly after that existing marker; clippers without such a
// trnode are prepended ahead of every marker. This ordering is what lets
// the tracer hoist common inverse transforms across a group of clippers.
func (s *Surface) AddRelation(templates []clipperTemplate) {
	for _, tpl := range templates {
		var marker *ClipperElem
		if tpl.surface.TrNode != nil && tpl.surface.TrNode != tpl.surface {
			marker = s.findMarkerInSegment(tpl.surface.TrNode, tpl.accumGroup)
		}

		elem := &ClipperElem{
			Kind:       ClipperSurface,
			Surface:    tpl.surface,
			Relation:   tpl.relation,
			AccumGroup: tpl.accumGroup,
		}

		if marker != nil {
			// Insert right after the existing marker for this trnode.
			elem.Next = marker.Next
			marker.Next = elem
			continue
		}

		if tpl.surface.TrNode != nil && tpl.surface.TrNode != tpl.surface {
			// No existing marker for this trnode in the current
			// accumulation segment: append a fresh marker followed by
			// the clipper element after the rest of the list, so no
			// element already in the list ends up under this marker.
			newMarker := &ClipperElem{
				Kind:       ClipperTrNodeMarker,
				TrNode:     tpl.surface.TrNode,
				AccumGroup: tpl.accumGroup,
				Next:       elem,
			}
			if s.CustomClippers == nil {
				s.CustomClippers = newMarker
				continue
			}
			tail := s.CustomClippers
			for tail.Next != nil {
				tail = tail.Next
			}
			tail.Next = newMarker
			continue
		}

		elem.Next = s.CustomClippers
		s.CustomClippers = elem
	}
}

// findMarkerInSegment looks for an existing trnode marker element that is
// part of the same accumulation segment.
func (s *Surface) findMarkerInSegment(trnode Object, accumGroup int) *ClipperElem {
	for e := s.CustomClippers; e != nil; e = e.Next {
		if e.Kind == ClipperTrNodeMarker && e.TrNode == trnode && e.AccumGroup == accumGroup {
			return e
		}
	}
	return nil
}

// nonTrivialOuterClippers returns the MINUS_OUTER clippers sharing this
// surface's own trnode, skipping Planes and Arrays -- these are the ones
// consulted by update_minmax to accumulate cbox adjustments.
func (s *Surface) nonTrivialOuterClippers() []*Surface {
	var out []*Surface
	for e := s.CustomClippers; e != nil; e = e.Next {
		if e.Kind != ClipperSurface {
			continue
		}
		if e.Relation != MinusOuter {
			continue
		}
		if e.Surface.SurfaceKind == KindPlane {
			continue
		}
		if e.Surface.TrNode != s.TrNode {
			continue
		}
		out = append(out, e.Surface)
	}
	return out
}
