package object

import "github.com/zouzias/QuadRay-engine/types"

// Array is an interior scene-graph node: an ordered list of children plus
// an optional relation list.
type Array struct {
	Base

	Children  []Object
	Relations []Relation

	// BBox/CBox are the union of the boxes of the children whose BVNode
	// is this array; they are left unchanged when no child is so tagged.
	BBox types.AABB
	CBox types.AABB
}

func (a *Array) Kind() Kind { return KindArray }

// NewArray creates an empty array with the given local transform.
func NewArray(name string, local types.Transform3D) *Array {
	return &Array{Base: Base{name: name, Local: local}}
}

// AddChild appends a child, setting its parent link.
func (a *Array) AddChild(child Object) {
	child.base().parent = a
	a.Children = append(a.Children, child)
}

// resolveChildRef dereferences a child index within the array, applying the
// -1 sentinel.
func (a *Array) resolveChildRef(idx int) (Object, error) {
	if idx == IndexNone {
		return nil, nil
	}
	if idx < 0 || idx >= len(a.Children) {
		return nil, ErrRelationIndex
	}
	return a.Children[idx], nil
}

// processRelations walks this array's relation list, expanding
// MINUS_INNER/MINUS_OUTER/MINUS_ACCUM groups into clipperTemplate
// batches and invoking AddRelation on the destination surface for each
// accepted relation. BOUND_ARRAY/UNTIE_ARRAY/BOUND_INDEX/UNTIE_INDEX attach
// or detach a bvnode pointer on the referenced child.
func (a *Array) processRelations() error {
	if len(a.Relations) == 0 {
		return nil
	}

	// left/right sub-array narrowed by a preceding INDEX_ARRAY relation.
	leftArr, rightArr := a, a
	pending := map[*Surface][]clipperTemplate{}
	accumGroup := 0
	inAccum := false

	for _, rel := range a.Relations {
		switch rel.Kind {
		case IndexArray:
			left, err := leftArr.resolveChildRef(rel.Obj1)
			if err != nil {
				return err
			}
			right, err := rightArr.resolveChildRef(rel.Obj2)
			if err != nil {
				return err
			}
			if sub, ok := left.(*Array); ok && sub != nil {
				leftArr = sub
			}
			if sub, ok := right.(*Array); ok && sub != nil {
				rightArr = sub
			}

		case MinusAccum:
			inAccum = !inAccum
			if inAccum {
				accumGroup++
			}

		case MinusInner, MinusOuter:
			dstObj, err := leftArr.resolveChildRef(rel.Obj1)
			if err != nil {
				return err
			}
			srcObj, err := rightArr.resolveChildRef(rel.Obj2)
			if err != nil {
				return err
			}
			dst, ok := dstObj.(*Surface)
			if !ok || dst == nil {
				continue
			}

			group := 0
			if inAccum {
				group = accumGroup
			}
			for _, srf := range expandToSurfaces(srcObj) {
				pending[dst] = append(pending[dst], clipperTemplate{
					surface:    srf,
					relation:   rel.Kind,
					accumGroup: group,
				})
			}

		case BoundArray, BoundIndex:
			child, err := leftArr.resolveChildRef(rel.Obj1)
			if err != nil {
				return err
			}
			if child != nil {
				child.base().BVNode = a
			}

		case UntieArray, UntieIndex:
			child, err := leftArr.resolveChildRef(rel.Obj1)
			if err != nil {
				return err
			}
			if child != nil && child.base().BVNode == a {
				child.base().BVNode = nil
			}
		}
	}

	for dst, templates := range pending {
		dst.AddRelation(templates)
	}
	return nil
}

// expandToSurfaces flattens a relation's right-hand object into a leaf
// surface list: a surface expands to itself, an array expands to every
// surface transitively contained within it.
func expandToSurfaces(obj Object) []*Surface {
	switch o := obj.(type) {
	case nil:
		return nil
	case *Surface:
		return []*Surface{o}
	case *Array:
		var out []*Surface
		for _, c := range o.Children {
			out = append(out, expandToSurfaces(c)...)
		}
		return out
	default:
		return nil
	}
}
