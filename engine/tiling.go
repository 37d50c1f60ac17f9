package engine

import (
	"sort"

	"github.com/zouzias/QuadRay-engine/object"
	"github.com/zouzias/QuadRay-engine/types"
)

// TileGrid partitions the framebuffer into tileW x tileH rectangles and
// holds, for every tile, the list of surfaces whose projected bounding
// polyhedron touches it, front-to-back sorted.
type TileGrid struct {
	TileW, TileH uint32
	Cols, Rows   uint32

	tiles [][]*object.Surface
}

// NewTileGrid allocates an empty grid covering a frameW x frameH image.
func NewTileGrid(frameW, frameH, tileW, tileH uint32) *TileGrid {
	cols := (frameW + tileW - 1) / tileW
	rows := (frameH + tileH - 1) / tileH
	return &TileGrid{
		TileW: tileW, TileH: tileH,
		Cols: cols, Rows: rows,
		tiles: make([][]*object.Surface, cols*rows),
	}
}

func (g *TileGrid) at(col, row uint32) []*object.Surface {
	return g.tiles[row*g.Cols+col]
}

func (g *TileGrid) prepend(col, row uint32, s *object.Surface) {
	idx := row*g.Cols + col
	g.tiles[idx] = append([]*object.Surface{s}, g.tiles[idx]...)
}

// screenProjector captures the per-camera basis used to map world points
// onto pixel coordinates.
type screenProjector struct {
	cam       *object.Camera
	pos       types.Vec3
	hor, ver  types.Vec3
	nrm       types.Vec3
	factor    float32
	org       types.Vec3
	frameW    float32
	frameH    float32
}

// newScreenProjector derives org = pos + pov*nrm - (xres*factor/2)*hor -
// (yres*factor/2)*ver from the camera's current basis. factor is the
// world-space size of one pixel at the image plane, taken as
// 2*pov/xres (square pixels, Open Question decision (d), DESIGN.md).
func newScreenProjector(cam *object.Camera, frameW, frameH uint32) *screenProjector {
	pos := cam.Position()
	factor := 2 * cam.Pov / float32(frameW)
	org := pos.Add(cam.Nrm.Mul(cam.Pov))
	org = org.Sub(cam.Hor.Mul(float32(frameW) * factor / 2))
	org = org.Sub(cam.Ver.Mul(float32(frameH) * factor / 2))
	return &screenProjector{
		cam: cam, pos: pos, hor: cam.Hor, ver: cam.Ver, nrm: cam.Nrm,
		factor: factor, org: org, frameW: float32(frameW), frameH: float32(frameH),
	}
}

// project maps a world point onto pixel coordinates by casting it through
// the camera's pinhole onto the image plane at distance pov, then reading
// off its offset from org along hor/ver.
func (p *screenProjector) project(world types.Vec3) (float32, float32, bool) {
	rel := world.Sub(p.pos)
	depth := rel.Dot(p.nrm)
	if depth <= object.ClipThreshold {
		return 0, 0, false
	}
	t := p.cam.Pov / depth
	onPlane := p.pos.Add(rel.Mul(t))
	offset := onPlane.Sub(p.org)
	return offset.Dot(p.hor) / p.factor, offset.Dot(p.ver) / p.factor, true
}

// rayDirection returns the unit world-space direction from the camera eye
// through pixel (col, row), used to seed a tile's ray packets.
func (p *screenProjector) rayDirection(col, row float32) types.Vec3 {
	point := p.org.Add(p.hor.Mul(col * p.factor)).Add(p.ver.Mul(row * p.factor))
	return point.Sub(p.pos).Normalize()
}

// BuildTileGrid projects every surface's bounding polyhedron, determines
// the tile rows/columns its footprint touches, and prepends a list entry
// for each. Surfaces with no generated polyhedron
// (cbox unbounded on some axis) fall back to touching every tile -- they
// can't be conservatively culled from screen space.
func BuildTileGrid(cam *object.Camera, surfaces []*object.Surface, frameW, frameH, tileW, tileH uint32) *TileGrid {
	grid := NewTileGrid(frameW, frameH, tileW, tileH)
	proj := newScreenProjector(cam, frameW, frameH)

	for _, s := range surfaces {
		touchAllTiles := len(s.Shape().Verts) == 0
		if touchAllTiles {
			insertEverywhere(grid, s)
			continue
		}
		minX, minY, maxX, maxY, any := projectedBounds(proj, s)
		if !any {
			insertEverywhere(grid, s)
			continue
		}
		insertRange(grid, s, minX, minY, maxX, maxY)
	}

	for i := range grid.tiles {
		grid.tiles[i] = sortFrontToBack(grid.tiles[i], cam.Position())
	}
	return grid
}

func projectedBounds(proj *screenProjector, s *object.Surface) (minX, minY, maxX, maxY float32, any bool) {
	for _, v := range s.Shape().Verts {
		world := s.Matrix.MulPoint(v)
		x, y, ok := proj.project(world)
		if !ok {
			continue
		}
		if !any {
			minX, maxX, minY, maxY = x, x, y, y
			any = true
			continue
		}
		minX, maxX = minf(minX, x), maxf(maxX, x)
		minY, maxY = minf(minY, y), maxf(maxY, y)
	}
	return
}

func insertRange(grid *TileGrid, s *object.Surface, minX, minY, maxX, maxY float32) {
	colLo := clampTile(int32(minX/float32(grid.TileW)), grid.Cols)
	colHi := clampTile(int32(maxX/float32(grid.TileW)), grid.Cols)
	rowLo := clampTile(int32(minY/float32(grid.TileH)), grid.Rows)
	rowHi := clampTile(int32(maxY/float32(grid.TileH)), grid.Rows)
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			grid.prepend(col, row, s)
		}
	}
}

func insertEverywhere(grid *TileGrid, s *object.Surface) {
	for row := uint32(0); row < grid.Rows; row++ {
		for col := uint32(0); col < grid.Cols; col++ {
			grid.prepend(col, row, s)
		}
	}
}

func clampTile(v int32, limit uint32) uint32 {
	if v < 0 {
		return 0
	}
	if uint32(v) >= limit {
		if limit == 0 {
			return 0
		}
		return limit - 1
	}
	return uint32(v)
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// sortFrontToBack implements ssort (Open Question decision (a)): front to
// back by the camera's distance to the world-space center of the surface's
// clip box, ties broken by bounding-sphere center distance and then by the
// order of the input list (BuildTileGrid prepends, so that is the reverse
// of registry order). Only a deterministic front-to-back order is
// required, not this exact comparator.
func sortFrontToBack(list []*object.Surface, camPos types.Vec3) []*object.Surface {
	out := make([]*object.Surface, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		di := nearDistance(out[i], camPos)
		dj := nearDistance(out[j], camPos)
		if di != dj {
			return di < dj
		}
		si := sphereDistance(out[i], camPos)
		sj := sphereDistance(out[j], camPos)
		return si < sj
	})
	return out
}

func nearDistance(s *object.Surface, camPos types.Vec3) float32 {
	center := s.ClipBox.Min.Add(s.ClipBox.Max).Mul(0.5)
	return s.Matrix.MulPoint(center).Sub(camPos).Len()
}

func sphereDistance(s *object.Surface, camPos types.Vec3) float32 {
	return s.Matrix.MulPoint(s.SphereMid).Sub(camPos).Len()
}

// SortLights implements lsort: closer, brighter lights first, so the
// shading loop spends its shadow-ray budget on the lights most likely to
// matter.
func SortLights(lights []*object.Light, point types.Vec3) []*object.Light {
	out := make([]*object.Light, len(lights))
	copy(out, lights)
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].Position().Sub(point).Len() / maxf(out[i].Lum[1], 1e-6)
		dj := out[j].Position().Sub(point).Len() / maxf(out[j].Lum[1], 1e-6)
		return di < dj
	})
	return out
}
