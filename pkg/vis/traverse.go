package vis

import (
	"image"
	"math"
)

// FindVisibleAreas runs the portal traversal for q and fills its
// result lists. The start area is the one containing the view origin,
// the nearest area when the origin is in the void, or the frozen area
// when LockArea is set. With culling disabled, or a world with no
// portals, every area is marked visible: degradation is always
// over-inclusion, never dropped geometry. An empty world yields an
// empty visible set.
func (w *World) FindVisibleAreas(q *Query) {
	q.VisibleAreas = q.VisibleAreas[:0]
	q.VisiblePortals = q.VisiblePortals[:0]
	q.Stats = QueryStats{}

	if len(w.areas) == 0 {
		return
	}

	if !w.UsePortals || len(w.portals) == 0 {
		for i := range w.areas {
			w.markAreaVisible(q, w.areas[i].ID, NoPortal, 0)
		}
		w.noteQueryDone(q)
		return
	}

	start := w.startArea(q)
	w.markAreaVisible(q, start, NoPortal, 0)
	w.recursePortals(q, start, 0)
	w.noteQueryDone(q)
}

// startArea resolves the area traversal begins in, honoring the lock.
func (w *World) startArea(q *Query) AreaID {
	if w.LockArea && w.lockedArea != NoArea {
		return w.lockedArea
	}
	start := w.PointInArea(q.View.Origin)
	if start == NoArea {
		start = w.NearestArea(q.View.Origin)
	}
	if w.LockArea {
		w.lockedArea = start
	}
	return start
}

// recursePortals explores every portal bordering area, descending into
// neighbors that survive the frustum and scissor tests. Frustum and
// scissor narrowing is undone after each descent, so sibling portals
// at the same depth never observe each other's restrictions.
func (w *World) recursePortals(q *Query, areaID AreaID, depth int) {
	if depth >= q.maxDepth {
		// The area itself was marked by the caller; its neighbors are
		// simply not explored.
		w.noteDepth(q, depth)
		return
	}
	w.noteDepth(q, depth)
	q.Stats.AreasChecked++

	area := &w.areas[areaID]
	area.queriedQuery = q.id

	for _, pid := range area.Portals {
		p := &w.portals[pid]
		if p.State == PortalClosed {
			continue
		}
		q.Stats.PortalsChecked++

		// One-sided portals admit traversal only from the front side
		// of the winding plane.
		if !p.TwoSided && !p.Degenerate() && areaID == p.Areas[1] {
			continue
		}

		if !q.frustum.PolygonVisible(p.Points) {
			continue
		}

		next := p.OtherArea(areaID)
		if next == NoArea || w.areas[next].visQuery == q.id {
			continue
		}

		scissor, ok := q.portalScissor(p, depth)
		if !ok {
			continue
		}

		savedScissor := q.scissor[depth+1]
		savedFrustum := q.frustum
		q.scissor[depth+1] = scissor
		q.frustum = q.frustum.Narrow(q.View.Origin, p.Points)
		q.chain[depth] = pid

		w.markAreaVisible(q, next, pid, depth+1)
		w.markPortalVisible(q, p)

		w.recursePortals(q, next, depth+1)

		q.frustum = savedFrustum
		q.scissor[depth+1] = savedScissor
	}
}

// portalScissor projects the portal polygon to the screen, takes the
// 2D bounding rectangle and intersects it with the scissor at depth.
// Returns false when the intersection is empty: the portal is off
// screen within the current opening. Vertices that cannot be projected
// (behind the eye) make the whole portal fall back to the parent
// scissor, erring conservative rather than clipping too tight.
func (q *Query) portalScissor(p *Portal, depth int) (image.Rectangle, bool) {
	parent := q.scissor[depth]
	if p.Degenerate() {
		return parent, !parent.Empty()
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		x, y, ok := q.View.projectToScreen(q.viewProj, pt)
		if !ok {
			return parent, !parent.Empty()
		}
		// Vertices almost on the eye plane project arbitrarily far out;
		// clamp so the int conversion below stays in range.
		const lim = 1 << 24
		x = math.Max(-lim, math.Min(lim, x))
		y = math.Max(-lim, math.Min(lim, y))
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	rect := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(parent)
	return rect, !rect.Empty()
}

// markAreaVisible stamps the area for this query and appends it to the
// result list together with the frustum and scissor in effect at
// discovery. Appends beyond MaxVisibleAreas are dropped with a
// one-time warning; the stamp still counts the area as visible.
func (w *World) markAreaVisible(q *Query, id AreaID, through PortalID, depth int) {
	if id == NoArea {
		return
	}
	area := &w.areas[id]
	if area.visQuery == q.id {
		return
	}
	area.visQuery = q.id
	area.queriedQuery = q.id
	q.Stats.SurfacesChecked += len(area.Surfaces)

	if len(q.VisibleAreas) >= MaxVisibleAreas {
		w.warnVisible.Do(func() {
			logger().Warn("visible area list full, truncating", "max", MaxVisibleAreas)
		})
		return
	}
	q.VisibleAreas = append(q.VisibleAreas, VisibleArea{
		Area:    id,
		Portal:  through,
		Frustum: q.frustum,
		Scissor: q.scissor[min(depth, MaxPortalDepth)],
	})
}

func (w *World) markPortalVisible(q *Query, p *Portal) {
	if p.visQuery == q.id {
		return
	}
	p.visQuery = q.id
	q.VisiblePortals = append(q.VisiblePortals, p.ID)
}

func (w *World) noteDepth(q *Query, depth int) {
	if depth > q.Stats.MaxDepth {
		q.Stats.MaxDepth = depth
	}
	if depth > w.maxDepthReached {
		w.maxDepthReached = depth
	}
}

func (w *World) noteQueryDone(q *Query) {
	w.totalAreasVisible = len(q.VisibleAreas)
	w.totalPortalsVisible = len(q.VisiblePortals)
}
