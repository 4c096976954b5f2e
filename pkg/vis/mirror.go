package vis

// MirrorView derives the secondary camera for a mirror portal: the
// view origin and axes reflected across the portal plane. The caller
// issues a nested query with the result (using its own fresh query
// id). Returns false when the portal is not a mirror or has no plane
// to reflect across.
func (w *World) MirrorView(id PortalID, view View) (View, bool) {
	p := w.Portal(id)
	if p == nil || p.State != PortalMirror || p.Degenerate() {
		return View{}, false
	}

	n := p.Plane.Normal
	d := p.Plane.DistanceToPoint(view.Origin)

	out := view
	out.Origin = view.Origin.Sub(n.Scale(2 * d))
	for i, axis := range view.Axis {
		out.Axis[i] = axis.Reflect(n)
	}
	return out, true
}
