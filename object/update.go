package object

import "github.com/zouzias/QuadRay-engine/types"

// Config carries the update pipeline's tunable bits. World matrices and
// their inverses are always fully composed per-object regardless of these
// settings; TArray only changes which object a surface or array reports as
// its trnode, not how any matrix is computed.
type Config struct {
	// FScale: when clear, any non-trivial scale is promoted to imply
	// non-trivial rotation too, forcing every descendant onto the
	// non-trivial-transform path.
	FScale bool
	// TArray: when clear, every surface and array becomes its own trnode
	// instead of pointing at a shared non-trivial ancestor.
	TArray bool
	// Adjust: when clear, update_minmax always takes the direct
	// shape-only path, skipping the custom-clipper cbox accumulation.
	Adjust bool
}

// DefaultConfig mirrors the optimizations being enabled by default in the
// original engine.
func DefaultConfig() Config {
	return Config{FScale: true, TArray: true, Adjust: true}
}

// UpdateTree runs Phase 0 from the given root, starting with an
// identity parent matrix and no inherited trm bits. Phase 0 is strictly
// sequential: it mutates the shared clipper/relation linked structures
// carved out of the arena and must never run concurrently with itself.
func UpdateTree(root *Array, time int64, cfg Config) error {
	_, err := updateObject(root, time, types.Ident4(), 0, cfg)
	return err
}

// updateObject runs Phase 0 for a single object and, for arrays, recurses
// into children and processes relations. It returns the object's own
// ObjHasTRM bits; an enclosing Array discards them and passes its own
// ObjHasTRM bits to every child as parentTRM.
func updateObject(obj Object, time int64, parentMtx types.Mat4, parentTRM TRMFlag, cfg Config) (TRMFlag, error) {
	b := obj.base()

	// Step 1: fire the animation callback when time actually advances,
	// and refresh Changed from either the callback firing or the parent
	// signalling a transform change.
	animFired := false
	if b.Anim != nil && (!b.haveTime || b.lastTime != time) {
		b.Anim(time, b.lastTime, &b.Local, b.userData)
		animFired = true
	}
	parentChanged := parentTRM != 0
	b.Changed = animFired || parentChanged
	b.haveTime = true
	b.lastTime = time

	// bvnode is reset every frame and only reinstated by an enclosing
	// array's BOUND_ARRAY/BOUND_INDEX relation (object.cpp rt_Object::update).
	b.BVNode = nil

	// Step 2: obj_has_trm.
	var objHasTRM TRMFlag
	if b.Local.HasScale() {
		objHasTRM |= TRMScale
	}
	if b.Local.HasRotation() {
		objHasTRM |= TRMRotate
	}
	if !cfg.FScale && objHasTRM&TRMScale != 0 {
		objHasTRM |= TRMRotate
	}
	b.ObjHasTRM = objHasTRM

	// Step 3: mtx_has_trm.
	mtxHasTRM := objHasTRM | parentTRM
	b.MtxHasTRM = mtxHasTRM

	// Step 4: resolve trnode by walking ancestors.
	var trnode Object
	for p := b.parent; p != nil; p = p.base().parent {
		if p.base().ObjHasTRM != 0 {
			trnode = p
			break
		}
	}

	// b.Matrix is always kept fully world-composed (parent chain x local).
	// parentMtx is already the parent's own fully-composed world matrix,
	// so it already carries every ancestor's contribution including
	// trnode's -- re-multiplying trnode here would apply it twice. The
	// "transform caching" optimization described for this step only
	// changes how eagerly the *inverse* matrix is recomputed (Phase 1
	// step 5), never what the forward matrix itself holds, so it has no
	// bearing on this composition.
	b.Matrix = parentMtx.Mul(b.Local.Matrix())

	// Step 5: an object with its own non-trivial transform is its own
	// trnode.
	if objHasTRM != 0 {
		trnode = obj
	}
	_, isSurfaceOrArray := obj.(*Surface)
	if !isSurfaceOrArray {
		if _, ok := obj.(*Array); ok {
			isSurfaceOrArray = true
		}
	}
	if trnode != nil && (!cfg.TArray || !isSurfaceOrArray) {
		trnode = obj
	}
	b.TrNode = trnode

	switch o := obj.(type) {
	case *Array:
		childMtx := o.Matrix
		for _, child := range o.Children {
			if _, err := updateObject(child, time, childMtx, objHasTRM, cfg); err != nil {
				return 0, err
			}
		}
		if err := o.processRelations(); err != nil {
			return 0, err
		}
	case *Camera:
		o.refreshBasis()
	}

	return objHasTRM, nil
}
