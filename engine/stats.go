package engine

import "time"

// WorkerFrameStat is one worker's contribution to a single rendered frame.
type WorkerFrameStat struct {
	// WorkerIndex identifies the worker within the pool.
	WorkerIndex int

	// BlockH is the number of pixel rows this worker was assigned.
	BlockH uint32
	// FramePercent is BlockH as a fraction of the frame's total row count.
	FramePercent float32

	// RenderTime is how long this worker spent on its assigned rows.
	RenderTime time.Duration
}

// FrameStats summarizes one Render call: per-worker timing plus the
// Phase 0/Phase 1/tiling/render split, used by cmd's table output and fed
// back into the BlockScheduler for the next frame.
type FrameStats struct {
	Workers []WorkerFrameStat

	UpdateTime time.Duration
	BoundsTime time.Duration
	TilingTime time.Duration
	RenderTime time.Duration
}

// Total returns the sum of every phase's recorded duration.
func (s FrameStats) Total() time.Duration {
	return s.UpdateTime + s.BoundsTime + s.TilingTime + s.RenderTime
}
