package object

// RelationKind enumerates the tuple kinds an Array's relation list may
// contain.
type RelationKind uint8

const (
	MinusInner RelationKind = iota
	MinusOuter
	MinusAccum
	IndexArray
	BoundArray
	UntieArray
	BoundIndex
	UntieIndex
)

// IndexNone is the "-1 sentinel" allowed for relation child indices.
const IndexNone = -1

// Relation is one tuple (obj1_index, kind, obj2_index) from an Array's
// relation list. A relation only operates within the array's
// immediate children unless Kind is IndexArray, which descends into a
// named sub-array first.
type Relation struct {
	Obj1 int
	Kind RelationKind
	Obj2 int
}

// ClipperElemKind tags one node of a surface's custom clipper list.
type ClipperElemKind uint8

const (
	// ClipperTrNodeMarker groups the elements that follow it until the
	// next marker or list end: all of them share this marker's TrNode.
	ClipperTrNodeMarker ClipperElemKind = iota
	// ClipperSurface references one clipping surface.
	ClipperSurface
)

// ClipperElem is one node of a surface's intrusive custom clipper list,
// built during Phase 0 and read-only during Phase 1/render.
type ClipperElem struct {
	Kind ClipperElemKind

	// Valid when Kind == ClipperTrNodeMarker.
	TrNode Object

	// Valid when Kind == ClipperSurface.
	Surface  *Surface
	Relation RelationKind // MinusInner or MinusOuter within this context

	// AccumGroup is non-zero for elements that belong to the same
	// MinusAccum-bracketed accumulation segment; elements
	// sharing a non-zero AccumGroup are evaluated as a single boolean
	// "outside any of these" group.
	AccumGroup int

	Next *ClipperElem
}

// clipperTemplate is the per-destination-surface work item produced while
// walking an Array's relation list; Surface.AddRelation consumes a slice
// of these to extend its custom clipper list.
type clipperTemplate struct {
	surface    *Surface
	relation   RelationKind
	accumGroup int
}
