package vis

import (
	"github.com/taigrr/portalvis/pkg/math3d"
)

// gridDim is the locator resolution along each axis.
const gridDim = 64

// areaGrid accelerates point-to-area lookups. Each cell caches the
// last area confirmed to contain a point falling in that cell; a
// lookup validates the cached area before trusting it, so a stale or
// empty cell only costs the linear fallback, never correctness.
type areaGrid struct {
	mins     math3d.Vec3
	cellSize math3d.Vec3
	cells    []AreaID
}

func newAreaGrid(bounds AABB) areaGrid {
	size := bounds.Size()
	g := areaGrid{
		mins: bounds.Min,
		cellSize: math3d.V3(
			size.X/gridDim,
			size.Y/gridDim,
			size.Z/gridDim,
		),
		cells: make([]AreaID, gridDim*gridDim*gridDim),
	}
	for i := range g.cells {
		g.cells[i] = NoArea
	}
	return g
}

// cellIndex maps a world point to its flat cell index. Returns false
// for points outside the grid bounds or a degenerate grid.
func (g *areaGrid) cellIndex(p math3d.Vec3) (int, bool) {
	if g.cellSize.X <= 0 || g.cellSize.Y <= 0 || g.cellSize.Z <= 0 {
		return 0, false
	}
	x := int((p.X - g.mins.X) / g.cellSize.X)
	y := int((p.Y - g.mins.Y) / g.cellSize.Y)
	z := int((p.Z - g.mins.Z) / g.cellSize.Z)
	if x < 0 || x >= gridDim || y < 0 || y >= gridDim || z < 0 || z >= gridDim {
		return 0, false
	}
	return (z*gridDim+y)*gridDim + x, true
}

// PointInArea returns the id of the area containing point, or NoArea
// if the point lies outside every area. Average O(1) via the grid
// cache, falling back to a linear scan over all areas on a miss.
func (w *World) PointInArea(point math3d.Vec3) AreaID {
	idx, inGrid := w.grid.cellIndex(point)
	if inGrid {
		if cached := w.grid.cells[idx]; cached != NoArea {
			if w.areas[cached].Bounds.ContainsPoint(point) {
				return cached
			}
		}
	}

	for i := range w.areas {
		if w.areas[i].Bounds.ContainsPoint(point) {
			if inGrid {
				w.grid.cells[idx] = w.areas[i].ID
			}
			return w.areas[i].ID
		}
	}
	return NoArea
}

// NearestArea returns the area whose bounds are closest to point, the
// containing area if one exists, or NoArea for an empty world. Callers
// use it when the camera sits in the void between areas, keeping
// visibility continuous instead of collapsing to nothing.
func (w *World) NearestArea(point math3d.Vec3) AreaID {
	best := NoArea
	bestDist := 0.0
	for i := range w.areas {
		d := w.areas[i].Bounds.DistanceToPoint(point)
		if best == NoArea || d < bestDist {
			best = w.areas[i].ID
			bestDist = d
		}
	}
	return best
}
