package render

import (
	"github.com/taigrr/portalvis/pkg/math3d"
	"github.com/taigrr/portalvis/pkg/vis"
	"github.com/taigrr/portalvis/pkg/worldio"
)

// Debug renders the portal graph and query results as wireframes:
// surfaces and area bounds tinted by visibility, portal windings
// colored by state, and the scissor rectangles of the last query.
type Debug struct {
	fb       *Framebuffer
	view     vis.View
	viewProj math3d.Mat4
}

// NewDebug creates a debug renderer drawing through view onto fb. The
// view's viewport should match the framebuffer bounds.
func NewDebug(fb *Framebuffer, view vis.View) *Debug {
	return &Debug{
		fb:       fb,
		view:     view,
		viewProj: view.ViewProjection(),
	}
}

// worldToScreen projects a world point into framebuffer coordinates.
func (d *Debug) worldToScreen(p math3d.Vec3) (x, y float64, ok bool) {
	clip := d.viewProj.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, false
	}
	x = (ndc.X + 1) * 0.5 * float64(d.fb.Width)
	y = (1 - ndc.Y) * 0.5 * float64(d.fb.Height)
	return x, y, true
}

// DrawLine3D draws a line in world space. Lines with both endpoints
// off screen are skipped rather than clipped.
func (d *Debug) DrawLine3D(p1, p2 math3d.Vec3, c Color) {
	x1, y1, ok1 := d.worldToScreen(p1)
	x2, y2, ok2 := d.worldToScreen(p2)
	if !ok1 && !ok2 {
		return
	}
	d.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), c)
}

// DrawAABB draws the twelve edges of a bounding box.
func (d *Debug) DrawAABB(b vis.AABB, c Color) {
	var corners [8]math3d.Vec3
	for i := range corners {
		corners[i] = b.Corner(i)
	}
	// Corner indices are axis bit masks, so edges connect corners
	// differing in one bit.
	edges := [12][2]int{
		{0, 1}, {2, 3}, {4, 5}, {6, 7},
		{0, 2}, {1, 3}, {4, 6}, {5, 7},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		d.DrawLine3D(corners[e[0]], corners[e[1]], c)
	}
}

// DrawPolygon draws a closed polygon outline in world space.
func (d *Debug) DrawPolygon(points []math3d.Vec3, c Color) {
	for i := range points {
		d.DrawLine3D(points[i], points[(i+1)%len(points)], c)
	}
}

// DrawPortal draws a portal winding in its state color, with a short
// tick along the plane normal marking the front side.
func (d *Debug) DrawPortal(p *vis.Portal) {
	if p.Degenerate() {
		return
	}
	c := PortalColor(p.State, p.Opacity)
	d.DrawPolygon(p.Points, c)
	d.DrawLine3D(p.Center, p.Center.Add(p.Plane.Normal.Scale(p.Radius*0.25)), c)
}

// DrawGrid draws a reference grid on the XZ plane at y=0.
func (d *Debug) DrawGrid(size, step float64, c Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		d.DrawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), c)
	}
	for z := -half; z <= half; z += step {
		d.DrawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), c)
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (d *Debug) DrawAxes(length float64) {
	origin := math3d.Zero3()
	d.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	d.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	d.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}

// DrawWorld draws the whole world against a finished query: surface
// wireframes and area bounds take the visible or hidden tint, portals
// take their state color.
func (d *Debug) DrawWorld(world *worldio.World, q *vis.Query) {
	w := world.Vis

	for _, s := range world.Surfaces {
		area := w.Area(w.PointInArea(s.Bounds().Center()))
		c := AreaColor(area != nil && q.AreaVisible(area))
		d.drawSurface(s, c)
	}
	for id := vis.AreaID(0); int(id) < w.NumAreas(); id++ {
		a := w.Area(id)
		d.DrawAABB(a.Bounds, AreaColor(q.AreaVisible(a)))
	}
	for _, id := range world.Portals {
		d.DrawPortal(w.Portal(id))
	}
}

// DrawPath traces how visibility flowed: a line from the view origin
// into the start area, then from each traversed portal's center to the
// center of the area it revealed.
func (d *Debug) DrawPath(world *worldio.World, q *vis.Query, c Color) {
	w := world.Vis
	for i, va := range q.VisibleAreas {
		area := w.Area(va.Area)
		if va.Portal == vis.NoPortal {
			if i == 0 {
				d.DrawLine3D(q.View.Origin, area.Center, c)
			}
			continue
		}
		p := w.Portal(va.Portal)
		d.DrawLine3D(p.Center, area.Center, c)
		if other := w.Area(p.OtherArea(va.Area)); other != nil {
			d.DrawLine3D(other.Center, p.Center, c)
		}
	}
}

// DrawScissors overlays the scissor rectangle of every visible area.
func (d *Debug) DrawScissors(q *vis.Query) {
	for _, va := range q.VisibleAreas {
		d.fb.DrawRectOutline(va.Scissor, ColorGray)
	}
}

func (d *Debug) drawSurface(s *worldio.MeshSurface, c Color) {
	for i := 0; i+2 < len(s.Indices); i += 3 {
		a := s.Vertices[s.Indices[i]]
		b := s.Vertices[s.Indices[i+1]]
		cc := s.Vertices[s.Indices[i+2]]
		d.DrawLine3D(a, b, c)
		d.DrawLine3D(b, cc, c)
		d.DrawLine3D(cc, a, c)
	}
}
