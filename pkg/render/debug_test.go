package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/portalvis/pkg/math3d"
	"github.com/taigrr/portalvis/pkg/worldio"
)

func TestDebugDrawWorld(t *testing.T) {
	world := worldio.DemoWorld()

	cam := NewCamera()
	cam.Position = math3d.V3(10, 5, 10)
	cam.Yaw = -math.Pi / 2 // face +X down the hallway
	cam.AspectRatio = 640.0 / 480.0

	view := cam.View(640, 480)
	q := world.Vis.NewQuery(view)
	world.Vis.FindVisibleAreas(q)
	if len(q.VisibleAreas) < 2 {
		t.Fatalf("demo world query saw %d areas", len(q.VisibleAreas))
	}

	fb := NewFramebuffer(640, 480)
	d := NewDebug(fb, view)
	d.DrawWorld(world, q)
	d.DrawScissors(q)

	drawn := 0
	for _, p := range fb.Pixels {
		if p != (color.RGBA{}) {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("nothing drawn to the framebuffer")
	}
}

func TestDebugLineBehindCameraSkipped(t *testing.T) {
	cam := NewCamera()
	cam.Position = math3d.V3(0, 0, 0)

	fb := NewFramebuffer(64, 64)
	d := NewDebug(fb, cam.View(64, 64))

	// Both endpoints behind the default -Z view.
	d.DrawLine3D(math3d.V3(-1, 0, 5), math3d.V3(1, 0, 5), ColorWhite)
	for _, p := range fb.Pixels {
		if p != (color.RGBA{}) {
			t.Fatal("line behind the camera was drawn")
		}
	}
}
