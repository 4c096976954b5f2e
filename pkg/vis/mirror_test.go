package vis

import (
	"math"
	"testing"

	"github.com/taigrr/portalvis/pkg/math3d"
)

func TestMirrorView(t *testing.T) {
	w := NewWorld(NewAABB(math3d.V3(-50, -50, -50), math3d.V3(50, 50, 50)))
	a := w.AddArea(NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10)))
	b := w.AddArea(NewAABB(math3d.V3(-10, 0, 0), math3d.V3(0, 10, 10)))

	// Mirror surface in the x=0 plane, facing +X into area a.
	id, err := w.CreatePortal(quadX(0, 2, 8), a, b)
	if err != nil {
		t.Fatal(err)
	}
	w.SetPortalState(id, PortalMirror)

	view := lookView(math3d.V3(5, 5, 5), math3d.V3(-1, 0, 0))
	out, ok := w.MirrorView(id, view)
	if !ok {
		t.Fatal("MirrorView refused a mirror portal")
	}

	if out.Origin.Distance(math3d.V3(-5, 5, 5)) > 1e-9 {
		t.Errorf("mirrored origin = %v, want (-5, 5, 5)", out.Origin)
	}
	if out.Axis[0].Distance(math3d.V3(1, 0, 0)) > 1e-9 {
		t.Errorf("mirrored forward = %v, want +X", out.Axis[0])
	}
	// Axes tangent to the mirror plane are unchanged.
	if out.Axis[2].Distance(view.Axis[2]) > 1e-9 {
		t.Errorf("mirrored up = %v, want %v", out.Axis[2], view.Axis[2])
	}

	// The mirrored camera sits on the far side of the plane, at the
	// same distance.
	d := w.Portal(id).Plane.DistanceToPoint(view.Origin)
	dm := w.Portal(id).Plane.DistanceToPoint(out.Origin)
	if math.Abs(d+dm) > 1e-9 || d < 0 {
		t.Errorf("plane distances %v and %v should be opposite", d, dm)
	}
}

func TestMirrorViewRejections(t *testing.T) {
	w := NewWorld(NewAABB(math3d.V3(-50, -50, -50), math3d.V3(50, 50, 50)))
	a := w.AddArea(NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10)))
	b := w.AddArea(NewAABB(math3d.V3(-10, 0, 0), math3d.V3(0, 10, 10)))

	open, err := w.CreatePortal(quadX(0, 2, 8), a, b)
	if err != nil {
		t.Fatal(err)
	}
	flat, err := w.CreatePortal([]math3d.Vec3{math3d.V3(0, 2, 2), math3d.V3(0, 8, 8)}, a, b)
	if err != nil {
		t.Fatal(err)
	}
	w.SetPortalState(flat, PortalMirror)

	view := lookView(math3d.V3(5, 5, 5), math3d.V3(-1, 0, 0))

	if _, ok := w.MirrorView(open, view); ok {
		t.Error("non-mirror portal accepted")
	}
	if _, ok := w.MirrorView(flat, view); ok {
		t.Error("degenerate mirror accepted")
	}
	if _, ok := w.MirrorView(NoPortal, view); ok {
		t.Error("missing portal accepted")
	}
}
