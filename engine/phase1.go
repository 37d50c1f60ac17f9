package engine

import "github.com/zouzias/QuadRay-engine/object"

// UpdatePhase1Parallel recomputes bounds for every surface and array in the
// registry through the pool. Surfaces have no inter-object dependency and
// all run in a single wave; an array's bvnode-widened box depends on every
// direct child it widens over already having its own box, so arrays run in
// depth-descending waves (deepest first), each wave itself fully parallel,
// with a barrier between waves.
func UpdatePhase1Parallel(pool *Pool, reg *object.Registry, cfg object.Config) error {
	surfJobs := make([]Job, len(reg.Surfaces))
	for i, s := range reg.Surfaces {
		s := s
		surfJobs[i] = func() error { return object.UpdatePhase1(s, cfg) }
	}
	if err := pool.RunPhase(surfJobs); err != nil {
		return err
	}

	for _, wave := range arrayWaves(reg.Arrays) {
		jobs := make([]Job, len(wave))
		for i, a := range wave {
			a := a
			jobs[i] = func() error { return object.UpdatePhase1(a, cfg) }
		}
		if err := pool.RunPhase(jobs); err != nil {
			return err
		}
	}
	return nil
}

// arrayWaves groups arrays by distance from the scene root and returns the
// groups ordered deepest-first, so a later wave never runs before an array
// it might widen its own box over.
func arrayWaves(arrays []*object.Array) [][]*object.Array {
	depthOf := func(a *object.Array) int {
		d := 0
		for p := object.Object(a).Parent(); p != nil; p = p.Parent() {
			d++
		}
		return d
	}

	maxDepth := 0
	depths := make([]int, len(arrays))
	for i, a := range arrays {
		d := depthOf(a)
		depths[i] = d
		if d > maxDepth {
			maxDepth = d
		}
	}

	buckets := make([][]*object.Array, maxDepth+1)
	for i, a := range arrays {
		bucket := maxDepth - depths[i]
		buckets[bucket] = append(buckets[bucket], a)
	}

	var out [][]*object.Array
	for _, b := range buckets {
		if len(b) > 0 {
			out = append(out, b)
		}
	}
	return out
}
