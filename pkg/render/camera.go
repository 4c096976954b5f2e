package render

import (
	"image"
	"math"

	"github.com/taigrr/portalvis/pkg/math3d"
	"github.com/taigrr/portalvis/pkg/vis"
)

// Camera is a fly camera whose orientation is driven by Euler angles.
// Each frame it snapshots into a vis.View for visibility queries and
// projection.
type Camera struct {
	Position math3d.Vec3

	Pitch float64 // look up/down, radians
	Yaw   float64 // look left/right, radians

	FOV         float64 // vertical field of view, radians
	AspectRatio float64 // width / height
	Near        float64
	Far         float64
}

// NewCamera creates a camera with default projection settings.
func NewCamera() *Camera {
	return &Camera{
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
	}
}

// Forward returns the view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the right direction, always level with the ground.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

// Up returns the up direction.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

// View snapshots the camera into a query view for the given viewport.
func (c *Camera) View(width, height int) vis.View {
	fovX := 2 * math.Atan(math.Tan(c.FOV/2)*c.AspectRatio)
	return vis.PerspectiveView(
		c.Position,
		[3]math3d.Vec3{c.Forward(), c.Right(), c.Up()},
		fovX, c.FOV, c.Near, c.Far,
		image.Rect(0, 0, width, height),
	)
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera up (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Rotate adjusts pitch and yaw, clamping pitch away from the poles.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw

	const maxPitch = math.Pi/2 - 0.01
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// LookAt orients the camera toward a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
}
