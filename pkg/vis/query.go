package vis

import (
	"image"
	"math"

	"github.com/taigrr/portalvis/pkg/math3d"
)

// View is the camera snapshot a query runs against. The renderer
// supplies it once per frame (or per sub-view for mirrors and remote
// portals). Axis[0] is forward, Axis[1] right, Axis[2] up; all unit
// length and mutually orthogonal.
type View struct {
	Origin math3d.Vec3
	Axis   [3]math3d.Vec3

	FOVX, FOVY float64 // horizontal/vertical field of view, radians
	Near, Far  float64

	// Proj is the projection matrix used for screen-space scissor
	// derivation. Viewport is the screen rectangle it maps to.
	Proj     math3d.Mat4
	Viewport image.Rectangle
}

// PerspectiveView builds a View with a standard perspective projection
// derived from the fields of view and clip distances.
func PerspectiveView(origin math3d.Vec3, axis [3]math3d.Vec3, fovX, fovY, near, far float64, viewport image.Rectangle) View {
	aspect := math.Tan(fovX/2) / math.Tan(fovY/2)
	return View{
		Origin:   origin,
		Axis:     axis,
		FOVX:     fovX,
		FOVY:     fovY,
		Near:     near,
		Far:      far,
		Proj:     math3d.Perspective(fovY, aspect, near, far),
		Viewport: viewport,
	}
}

// ViewMatrix returns the world-to-eye matrix for this view.
func (v View) ViewMatrix() math3d.Mat4 {
	f, r, u := v.Axis[0], v.Axis[1], v.Axis[2]
	return math3d.Mat4{
		r.X, u.X, -f.X, 0,
		r.Y, u.Y, -f.Y, 0,
		r.Z, u.Z, -f.Z, 0,
		-r.Dot(v.Origin), -u.Dot(v.Origin), f.Dot(v.Origin), 1,
	}
}

// ViewProjection returns the combined view-projection matrix.
func (v View) ViewProjection() math3d.Mat4 {
	return v.Proj.Mul(v.ViewMatrix())
}

// projectToScreen maps a world point into viewport coordinates using a
// precomputed view-projection matrix. Returns false for points at or
// behind the eye plane, where the projection is meaningless.
func (v View) projectToScreen(viewProj math3d.Mat4, p math3d.Vec3) (x, y float64, ok bool) {
	clip := viewProj.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	w := float64(v.Viewport.Dx())
	h := float64(v.Viewport.Dy())
	x = float64(v.Viewport.Min.X) + (ndc.X+1)*0.5*w
	y = float64(v.Viewport.Min.Y) + (1-ndc.Y)*0.5*h
	return x, y, true
}

// VisibleArea is one entry of a query's output: the area, the portal
// it was discovered through (NoPortal for the start area), and the
// narrowed frustum and scissor in effect when it was found. Surface
// submission should cull against these rather than the base frustum
// when present.
type VisibleArea struct {
	Area    AreaID
	Portal  PortalID
	Frustum Frustum
	Scissor image.Rectangle
}

// Query is the transient state of one visibility determination. It is
// constructed by World.NewQuery, consumed by World.FindVisibleAreas,
// and owned exclusively by that call; the only state it leaves behind
// is the per-area/portal query stamps.
type Query struct {
	View View

	// id stamps areas and portals visited by this query. Ids are
	// allocated monotonically by the world, one per query, so several
	// sub-views rendered in one frame never alias each other's
	// visibility.
	id uint64

	viewProj math3d.Mat4
	frustum  Frustum
	maxDepth int

	scissor [MaxPortalDepth + 1]image.Rectangle
	chain   [MaxPortalDepth]PortalID

	// Results in discovery order.
	VisibleAreas   []VisibleArea
	VisiblePortals []PortalID

	Stats QueryStats
}

// NewQuery snapshots view into a fresh query: base frustum extracted
// from the view-projection matrix, depth-0 scissor seeded with the
// full viewport, and a unique monotonic id.
func (w *World) NewQuery(view View) *Query {
	w.nextQueryID++
	q := &Query{
		View:     view,
		id:       w.nextQueryID,
		viewProj: view.ViewProjection(),
		maxDepth: min(max(w.MaxDepth, 1), MaxPortalDepth),
	}
	q.frustum = FrustumFromMatrix(q.viewProj)
	q.scissor[0] = view.Viewport
	return q
}

// ID returns the unique id stamped on everything this query visits.
func (q *Query) ID() uint64 { return q.id }

// BaseFrustum returns the unnarrowed view frustum of the query.
func (q *Query) BaseFrustum() Frustum {
	return FrustumFromMatrix(q.viewProj)
}

// AreaVisible reports whether the area was found visible by this query.
func (q *Query) AreaVisible(a *Area) bool {
	return a != nil && a.visQuery == q.id
}

// PortalVisible reports whether the portal was traversed by this query.
func (q *Query) PortalVisible(p *Portal) bool {
	return p != nil && p.visQuery == q.id
}

// PortalChain returns the portals crossed to reach the current depth.
// Meaningful for diagnostics while a traversal callback is running; a
// finished query's chain reflects the last path walked.
func (q *Query) PortalChain() []PortalID {
	return q.chain[:min(q.Stats.MaxDepth, MaxPortalDepth)]
}
