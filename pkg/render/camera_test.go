package render

import (
	"math"
	"testing"

	"github.com/taigrr/portalvis/pkg/math3d"
	"github.com/taigrr/portalvis/pkg/vis"
)

func TestCameraAxesOrthonormal(t *testing.T) {
	cam := NewCamera()
	angles := []struct{ pitch, yaw float64 }{
		{0, 0},
		{0.3, 1.2},
		{-0.7, -2.5},
		{1.0, math.Pi},
	}
	for _, a := range angles {
		cam.Pitch, cam.Yaw = a.pitch, a.yaw
		f, r, u := cam.Forward(), cam.Right(), cam.Up()

		for name, v := range map[string]math3d.Vec3{"forward": f, "right": r, "up": u} {
			if math.Abs(v.Len()-1) > 1e-9 {
				t.Errorf("pitch=%v yaw=%v: %s not unit length: %v", a.pitch, a.yaw, name, v)
			}
		}
		if math.Abs(f.Dot(r)) > 1e-9 || math.Abs(f.Dot(u)) > 1e-9 || math.Abs(r.Dot(u)) > 1e-9 {
			t.Errorf("pitch=%v yaw=%v: axes not orthogonal", a.pitch, a.yaw)
		}
	}
}

func TestCameraDefaultFacesMinusZ(t *testing.T) {
	cam := NewCamera()
	if cam.Forward().Distance(math3d.V3(0, 0, -1)) > 1e-9 {
		t.Errorf("forward = %v, want -Z", cam.Forward())
	}
	if cam.Right().Distance(math3d.V3(1, 0, 0)) > 1e-9 {
		t.Errorf("right = %v, want +X", cam.Right())
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := NewCamera()
	cam.Position = math3d.V3(0, 0, 10)
	cam.LookAt(math3d.V3(0, 0, 0))

	if cam.Forward().Distance(math3d.V3(0, 0, -1)) > 1e-9 {
		t.Errorf("forward after LookAt = %v, want -Z", cam.Forward())
	}

	cam.Position = math3d.V3(0, 10, 0)
	cam.LookAt(math3d.V3(0, 0, 0))
	if cam.Forward().Distance(math3d.V3(0, -1, 0)) > 1e-6 {
		t.Errorf("forward looking down = %v, want -Y", cam.Forward())
	}
}

func TestCameraPitchClamp(t *testing.T) {
	cam := NewCamera()
	cam.Rotate(10, 0)
	if cam.Pitch >= math.Pi/2 {
		t.Errorf("pitch = %v, want clamped below pi/2", cam.Pitch)
	}
	cam.Rotate(-20, 0)
	if cam.Pitch <= -math.Pi/2 {
		t.Errorf("pitch = %v, want clamped above -pi/2", cam.Pitch)
	}
}

func TestCameraView(t *testing.T) {
	cam := NewCamera()
	cam.Position = math3d.V3(1, 2, 3)
	cam.AspectRatio = 2

	view := cam.View(640, 480)
	if view.Origin != cam.Position {
		t.Errorf("view origin = %v, want %v", view.Origin, cam.Position)
	}
	if view.Axis[0] != cam.Forward() || view.Axis[1] != cam.Right() || view.Axis[2] != cam.Up() {
		t.Error("view axes disagree with camera axes")
	}
	if view.FOVY != cam.FOV {
		t.Errorf("fovY = %v, want %v", view.FOVY, cam.FOV)
	}
	// Horizontal field of view follows the aspect ratio.
	wantFovX := 2 * math.Atan(math.Tan(cam.FOV/2)*cam.AspectRatio)
	if math.Abs(view.FOVX-wantFovX) > 1e-9 {
		t.Errorf("fovX = %v, want %v", view.FOVX, wantFovX)
	}
	if view.Viewport.Dx() != 640 || view.Viewport.Dy() != 480 {
		t.Errorf("viewport = %v", view.Viewport)
	}
}

func TestPortalColor(t *testing.T) {
	tests := []struct {
		state vis.PortalState
		want  Color
	}{
		{vis.PortalOpen, ColorGreen},
		{vis.PortalClosed, ColorRed},
		{vis.PortalBlocked, ColorYellow},
		{vis.PortalMirror, ColorCyan},
		{vis.PortalRemote, ColorMagenta},
	}
	for _, tt := range tests {
		got := PortalColor(tt.state, 1)
		if got.R != tt.want.R || got.G != tt.want.G || got.B != tt.want.B {
			t.Errorf("PortalColor(%v) = %v, want %v", tt.state, got, tt.want)
		}
		if got.A != 255 {
			t.Errorf("PortalColor(%v) alpha = %d, want opaque", tt.state, got.A)
		}
	}

	if got := PortalColor(vis.PortalOpen, 0.5); got.A != 127 {
		t.Errorf("half opacity alpha = %d, want 127", got.A)
	}
	if got := PortalColor(vis.PortalOpen, -1); got.A != 0 {
		t.Errorf("clamped alpha = %d, want 0", got.A)
	}
}
