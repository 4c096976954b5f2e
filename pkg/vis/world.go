package vis

import (
	"fmt"
	"sync"

	"github.com/taigrr/portalvis/pkg/math3d"
)

// DefaultMaxDepth is the portal recursion limit applied to new worlds.
const DefaultMaxDepth = 8

// World owns the static area/portal graph and the spatial locator over
// it. Areas and portals live in flat arenas and reference each other by
// index. The graph is read-mostly: gameplay may flip portal state or
// opacity between frames, but never while a query is running; the
// surrounding engine's frame boundary is the synchronization point.
type World struct {
	areas   []Area
	portals []Portal
	grid    areaGrid

	// UsePortals enables portal culling. When false every query marks
	// all areas visible, trading culling for guaranteed inclusion.
	UsePortals bool

	// MaxDepth bounds portal recursion per query. Clamped to
	// [1, MaxPortalDepth] at query time.
	MaxDepth int

	// LockArea freezes the traversal start area at its current value,
	// so visibility can be inspected independent of camera motion.
	// Only the start area is frozen; the frustum still follows the
	// live view.
	LockArea   bool
	lockedArea AreaID

	nextQueryID uint64

	// Cumulative counters, observable via Stats. maxDepthReached is a
	// watermark and intentionally never resets.
	maxDepthReached     int
	totalAreasVisible   int
	totalPortalsVisible int

	warnAreas     sync.Once
	warnPortals   sync.Once
	warnAdjacency sync.Once
	warnSurfaces  sync.Once
	warnPoints    sync.Once
	warnVisible   sync.Once
}

// NewWorld creates an empty world whose spatial locator spans bounds.
func NewWorld(bounds AABB) *World {
	w := &World{
		UsePortals: true,
		MaxDepth:   DefaultMaxDepth,
		lockedArea: NoArea,
	}
	w.grid = newAreaGrid(bounds)
	logger().Info("world created", "bounds_min", bounds.Min, "bounds_max", bounds.Max)
	return w
}

// NumAreas returns the number of areas in the world.
func (w *World) NumAreas() int { return len(w.areas) }

// NumPortals returns the number of portals in the world.
func (w *World) NumPortals() int { return len(w.portals) }

// Area returns the area record for id, or nil if id is out of range.
func (w *World) Area(id AreaID) *Area {
	if id < 0 || int(id) >= len(w.areas) {
		return nil
	}
	return &w.areas[id]
}

// Portal returns the portal record for id, or nil if id is out of range.
func (w *World) Portal(id PortalID) *Portal {
	if id < 0 || int(id) >= len(w.portals) {
		return nil
	}
	return &w.portals[id]
}

// AddArea creates a new area with the given bounds and returns its id.
// Returns NoArea once MaxAreas is reached; the excess area is dropped
// with a one-time warning.
func (w *World) AddArea(bounds AABB) AreaID {
	if len(w.areas) >= MaxAreas {
		w.warnAreas.Do(func() {
			logger().Warn("area limit reached, dropping areas", "max", MaxAreas)
		})
		return NoArea
	}
	id := AreaID(len(w.areas))
	w.areas = append(w.areas, Area{
		ID:     id,
		Bounds: bounds,
		Center: bounds.Center(),
		Radius: bounds.Radius(),
		FogNum: -1,
	})
	return id
}

// CreatePortal creates a portal between two areas from an ordered
// polygon winding. The winding defines the portal plane, with areaA on
// the front side. The portal is registered in both areas' adjacency
// lists and defaults to open, opacity 1, two-sided.
//
// Invalid area ids are an error. Geometry problems are not: windings
// longer than MaxPortalPoints are truncated, and windings shorter than
// 3 points produce a degenerate portal that traversal treats
// conservatively.
func (w *World) CreatePortal(points []math3d.Vec3, areaA, areaB AreaID) (PortalID, error) {
	if len(w.portals) >= MaxPortals {
		w.warnPortals.Do(func() {
			logger().Warn("portal limit reached, dropping portals", "max", MaxPortals)
		})
		return NoPortal, fmt.Errorf("create portal: limit of %d portals reached", MaxPortals)
	}
	if w.Area(areaA) == nil || w.Area(areaB) == nil {
		return NoPortal, fmt.Errorf("create portal: invalid area pair (%d, %d)", areaA, areaB)
	}

	if len(points) > MaxPortalPoints {
		w.warnPoints.Do(func() {
			logger().Warn("portal winding truncated", "max", MaxPortalPoints, "got", len(points))
		})
		points = points[:MaxPortalPoints]
	}

	id := PortalID(len(w.portals))
	p := Portal{
		ID:       id,
		Points:   append([]math3d.Vec3(nil), points...),
		Areas:    [2]AreaID{areaA, areaB},
		State:    PortalOpen,
		Opacity:  1,
		TwoSided: true,
	}

	bounds := EmptyAABB()
	center := math3d.Zero3()
	for _, pt := range p.Points {
		bounds = bounds.AddPoint(pt)
		center = center.Add(pt)
	}
	if n := len(p.Points); n > 0 {
		p.Bounds = bounds
		p.Center = center.Scale(1.0 / float64(n))
		for _, pt := range p.Points {
			if d := pt.Distance(p.Center); d > p.Radius {
				p.Radius = d
			}
		}
	}

	if len(p.Points) >= 3 {
		if plane, ok := PlaneFromPoints(p.Points[0], p.Points[1], p.Points[2]); ok {
			p.Plane = plane
		} else {
			// Collinear winding: keep the portal but leave it
			// planeless, same treatment as too few points.
			p.Points = p.Points[:0]
		}
	}

	w.portals = append(w.portals, p)
	w.linkPortalToArea(areaA, id)
	w.linkPortalToArea(areaB, id)
	return id, nil
}

func (w *World) linkPortalToArea(area AreaID, portal PortalID) {
	a := &w.areas[area]
	if len(a.Portals) >= MaxAreaPortals {
		w.warnAdjacency.Do(func() {
			logger().Warn("area adjacency full, dropping portal link",
				"area", area, "portal", portal, "max", MaxAreaPortals)
		})
		return
	}
	a.Portals = append(a.Portals, portal)
}

// SetPortalState sets the portal's behavioral state.
func (w *World) SetPortalState(id PortalID, state PortalState) {
	if p := w.Portal(id); p != nil {
		p.State = state
	}
}

// OpenPortal sets the portal to the open state.
func (w *World) OpenPortal(id PortalID) { w.SetPortalState(id, PortalOpen) }

// ClosePortal sets the portal to the closed state. Closed portals are
// never traversed regardless of geometric visibility.
func (w *World) ClosePortal(id PortalID) { w.SetPortalState(id, PortalClosed) }

// SetPortalOpacity sets the portal's opacity in [0, 1].
func (w *World) SetPortalOpacity(id PortalID, opacity float64) {
	if p := w.Portal(id); p != nil {
		p.Opacity = min(max(opacity, 0), 1)
	}
}

// SetPortalTwoSided toggles one-way traversal. A one-sided portal is
// traversable only from the front (Areas[0]) side of its plane.
func (w *World) SetPortalTwoSided(id PortalID, twoSided bool) {
	if p := w.Portal(id); p != nil {
		p.TwoSided = twoSided
	}
}

// LinkSurfaceToArea finds the area containing the surface's bounds
// center and appends the surface to it. Returns the area id, or NoArea
// when the surface lies outside every area; such surfaces keep their
// brute-force visibility path elsewhere and this is not an error.
func (w *World) LinkSurfaceToArea(s Surface) AreaID {
	id := w.PointInArea(s.Bounds().Center())
	if id == NoArea {
		return NoArea
	}
	a := &w.areas[id]
	if len(a.Surfaces) >= MaxAreaSurfaces {
		w.warnSurfaces.Do(func() {
			logger().Warn("area surface list full, dropping surfaces",
				"area", id, "max", MaxAreaSurfaces)
		})
		return id
	}
	a.Surfaces = append(a.Surfaces, s)
	return id
}

// UpdateAreaBounds recomputes the area's bounds, center and radius as
// the union of its linked surfaces' bounds. An area with no surfaces
// keeps its load-time bounds.
func (w *World) UpdateAreaBounds(id AreaID) {
	a := w.Area(id)
	if a == nil || len(a.Surfaces) == 0 {
		return
	}
	bounds := EmptyAABB()
	for _, s := range a.Surfaces {
		bounds = bounds.Union(s.Bounds())
	}
	a.Bounds = bounds
	a.Center = bounds.Center()
	a.Radius = bounds.Radius()
}

// BoxInAreas returns the ids of all areas whose bounds intersect box,
// up to max (unlimited when max <= 0).
func (w *World) BoxInAreas(box AABB, max int) []AreaID {
	var out []AreaID
	for i := range w.areas {
		if max > 0 && len(out) >= max {
			break
		}
		if w.areas[i].Bounds.Intersects(box) {
			out = append(out, w.areas[i].ID)
		}
	}
	return out
}

// LockedArea returns the frozen start area, or NoArea when no query
// has run with LockArea set.
func (w *World) LockedArea() AreaID { return w.lockedArea }
