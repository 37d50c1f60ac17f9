package tracer

import "math"

// WorkerStats is one worker's timing feedback from the previous frame,
// used by PerfectScheduler to rebalance pixel-row ranges.
type WorkerStats struct {
	BlockH    uint32
	BlockTime int64 // nanoseconds
}

// BlockScheduler splits a frame's pixel rows into per-worker block heights.
// NaivePerFrame always distributes evenly; PerfectScheduler assumes the
// tracing workload is roughly stable frame-to-frame and rebalances from
// observed per-worker timings, the same assumption the original device
// scheduler made about OpenCL devices.
type BlockScheduler interface {
	Schedule(workerN int, frameH uint32, prevStats []WorkerStats) []uint32
}

type naivePerFrame struct{}

// NewNaivePerFrame creates a scheduler that always splits the frame into
// workerN equal-height blocks (the last block absorbs any remainder).
func NewNaivePerFrame() BlockScheduler { return naivePerFrame{} }

func (naivePerFrame) Schedule(workerN int, frameH uint32, _ []WorkerStats) []uint32 {
	if workerN <= 0 {
		return nil
	}
	out := make([]uint32, workerN)
	base := frameH / uint32(workerN)
	for i := range out {
		out[i] = base
	}
	out[len(out)-1] += frameH - base*uint32(workerN)
	return out
}

type perfectScheduler struct {
	blockAssignment []uint32
}

// NewPerfectScheduler creates a scheduler that estimates per-worker speed
// from the previous frame's (blockH / blockTime) ratio and distributes
// the next frame's rows proportionally.
func NewPerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Schedule implements the same w_i,f+1 = (blockH/time) / Σ(blockH/time)
// proportional-share formula the original device scheduler used, applied
// here to CPU worker threads instead of OpenCL devices.
func (sch *perfectScheduler) Schedule(workerN int, frameH uint32, prevStats []WorkerStats) []uint32 {
	if workerN <= 0 {
		return nil
	}
	if len(prevStats) != workerN {
		return NewNaivePerFrame().Schedule(workerN, frameH, nil)
	}

	var total float64
	for _, st := range prevStats {
		if st.BlockTime > 0 {
			total += float64(st.BlockH) / float64(st.BlockTime)
		}
	}
	if total <= 0 {
		return NewNaivePerFrame().Schedule(workerN, frameH, nil)
	}

	sch.blockAssignment = make([]uint32, workerN)
	scaler := float64(frameH) / total
	var scheduled uint32
	for i, st := range prevStats {
		var rate float64
		if st.BlockTime > 0 {
			rate = float64(st.BlockH) / float64(st.BlockTime)
		}
		h := uint32(math.Max(1.0, math.Floor(rate*scaler)))
		sch.blockAssignment[i] = h
		scheduled += h
	}
	if frameH > scheduled {
		sch.blockAssignment[0] += frameH - scheduled
	} else if drift := scheduled - frameH; sch.blockAssignment[0] > drift {
		sch.blockAssignment[0] -= drift
	}
	return sch.blockAssignment
}
