package engine

// FSAAMode selects the antialiasing sampling pattern.
type FSAAMode uint8

const (
	FSAANone FSAAMode = iota
	FSAA4X
)

// OptsBitmask holds the boolean render modes toggled from the CLI/keyboard
// surface (static-update, offscreen, log, hide-ui, ...).
type OptsBitmask uint32

const (
	// OptStatic disables per-frame Phase 1 bound recomputation once the
	// first frame has run and no camera action has changed the scene.
	OptStatic OptsBitmask = 1 << iota
	OptOffscreen
	OptLog
	OptHideUI
)

// Options configures a Scene at construction time and via SetOpts/SetFSAA/
// SetSIMD thereafter.
type Options struct {
	FrameW, FrameH uint32
	RowStride      uint32

	TileW, TileH uint32

	Depth uint32

	FSAA    FSAAMode
	Opts    OptsBitmask
	ThreadN uint32

	SIMDWidth   int
	SIMDVariant string

	ArenaBytes      int
	ScratchBytesPer int
}

// DefaultOptions mirrors the defaults implied by the CLI surface.
func DefaultOptions() Options {
	return Options{
		FrameW: 800, FrameH: 480,
		TileW: 16, TileH: 16,
		Depth:           4,
		FSAA:            FSAANone,
		ThreadN:         4,
		SIMDWidth:       4,
		SIMDVariant:     "cpu",
		ArenaBytes:      64 << 20,
		ScratchBytesPer: 1 << 20,
	}
}

// normalizedRowStride rounds FrameW up to the given SIMD lane count.
func normalizedRowStride(frameW uint32, lanes int) uint32 {
	if lanes <= 1 {
		return frameW
	}
	w := uint32(lanes)
	return ((frameW + w - 1) / w) * w
}
