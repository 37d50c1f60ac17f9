package object

import (
	"testing"

	"github.com/zouzias/QuadRay-engine/types"
)

func TestProcessRelationsMinusOuterAddsClipper(t *testing.T) {
	root := NewArray("root", types.Ident3D())
	ball := trivialSurface("ball")
	tool := trivialSurface("tool")
	root.AddChild(ball)
	root.AddChild(tool)
	root.Relations = []Relation{{Obj1: 0, Kind: MinusOuter, Obj2: 1}}

	if err := root.processRelations(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ball.CustomClippers == nil || ball.CustomClippers.Surface != tool {
		t.Fatalf("expected ball to gain tool as a MINUS_OUTER clipper; got %+v", ball.CustomClippers)
	}
	if ball.CustomClippers.Relation != MinusOuter {
		t.Fatalf("expected relation kind MinusOuter; got %v", ball.CustomClippers.Relation)
	}
}

func TestProcessRelationsMinusAccumGroupsClippers(t *testing.T) {
	root := NewArray("root", types.Ident3D())
	ball := trivialSurface("ball")
	t1 := trivialSurface("t1")
	t2 := trivialSurface("t2")
	root.AddChild(ball)
	root.AddChild(t1)
	root.AddChild(t2)
	root.Relations = []Relation{
		{Obj1: IndexNone, Kind: MinusAccum, Obj2: IndexNone},
		{Obj1: 0, Kind: MinusOuter, Obj2: 1},
		{Obj1: 0, Kind: MinusOuter, Obj2: 2},
		{Obj1: IndexNone, Kind: MinusAccum, Obj2: IndexNone},
	}

	if err := root.processRelations(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var group int = -1
	count := 0
	for e := ball.CustomClippers; e != nil; e = e.Next {
		count++
		if group == -1 {
			group = e.AccumGroup
		}
		if e.AccumGroup != group {
			t.Fatalf("expected both clippers to share one accumulation group; got %d and %d", group, e.AccumGroup)
		}
		if e.AccumGroup == 0 {
			t.Fatalf("expected a non-zero accumulation group while inside a MINUS_ACCUM bracket")
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 clippers added under the accumulation bracket; got %d", count)
	}
}

func TestProcessRelationsExpandsArrayToLeafSurfaces(t *testing.T) {
	root := NewArray("root", types.Ident3D())
	ball := trivialSurface("ball")
	group := NewArray("group", types.Ident3D())
	t1 := trivialSurface("t1")
	t2 := trivialSurface("t2")
	group.AddChild(t1)
	group.AddChild(t2)
	root.AddChild(ball)
	root.AddChild(group)
	root.Relations = []Relation{{Obj1: 0, Kind: MinusOuter, Obj2: 1}}

	if err := root.processRelations(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[*Surface]bool{}
	for e := ball.CustomClippers; e != nil; e = e.Next {
		if e.Kind == ClipperSurface {
			seen[e.Surface] = true
		}
	}
	if !seen[t1] || !seen[t2] {
		t.Fatalf("expected both leaf surfaces of the referenced array as clippers; got %v", seen)
	}
}

func TestProcessRelationsIndexArrayNarrowsLookup(t *testing.T) {
	root := NewArray("root", types.Ident3D())
	group := NewArray("group", types.Ident3D())
	ball := trivialSurface("ball")
	tool := trivialSurface("tool")
	group.AddChild(ball)
	group.AddChild(tool)
	root.AddChild(group)
	root.Relations = []Relation{
		{Obj1: 0, Kind: IndexArray, Obj2: 0},
		{Obj1: 0, Kind: MinusOuter, Obj2: 1},
	}

	if err := root.processRelations(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ball.CustomClippers == nil || ball.CustomClippers.Surface != tool {
		t.Fatalf("expected IndexArray to narrow subsequent lookups into group; got %+v", ball.CustomClippers)
	}
}

func TestProcessRelationsBoundArraySetsBVNode(t *testing.T) {
	root := NewArray("root", types.Ident3D())
	ball := trivialSurface("ball")
	root.AddChild(ball)
	root.Relations = []Relation{{Obj1: 0, Kind: BoundArray, Obj2: IndexNone}}

	if err := root.processRelations(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ball.BVNode != root {
		t.Fatalf("expected BoundArray to set ball's BVNode to root; got %v", ball.BVNode)
	}

	root.Relations = []Relation{{Obj1: 0, Kind: UntieArray, Obj2: IndexNone}}
	if err := root.processRelations(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ball.BVNode != nil {
		t.Fatalf("expected UntieArray to clear ball's BVNode; got %v", ball.BVNode)
	}
}

func TestProcessRelationsPropagatesIndexErrors(t *testing.T) {
	root := NewArray("root", types.Ident3D())
	ball := trivialSurface("ball")
	root.AddChild(ball)
	root.Relations = []Relation{{Obj1: 0, Kind: MinusOuter, Obj2: 7}}

	if err := root.processRelations(); err != ErrRelationIndex {
		t.Fatalf("expected ErrRelationIndex for an out-of-range relation child; got %v", err)
	}
}
