package vis

import (
	"math"
	"testing"

	"github.com/taigrr/portalvis/pkg/math3d"
)

func TestPlaneFromPoints(t *testing.T) {
	// CCW winding in the XY plane, normal should point +Z.
	p, ok := PlaneFromPoints(
		math3d.V3(0, 0, 0),
		math3d.V3(1, 0, 0),
		math3d.V3(0, 1, 0),
	)
	if !ok {
		t.Fatal("expected a valid plane")
	}
	if math.Abs(p.Normal.Z-1) > 1e-9 {
		t.Errorf("normal = %v, want +Z", p.Normal)
	}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"on plane", math3d.V3(5, 5, 0), 0},
		{"in front", math3d.V3(0, 0, 3), 3},
		{"behind", math3d.V3(0, 0, -2), -2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := p.DistanceToPoint(tc.point)
			if math.Abs(d-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", d, tc.expected)
			}
		})
	}
}

func TestPlaneFromPointsDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c math3d.Vec3
	}{
		{"collinear", math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(2, 0, 0)},
		{"coincident", math3d.V3(1, 1, 1), math3d.V3(1, 1, 1), math3d.V3(1, 1, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := PlaneFromPoints(tc.a, tc.b, tc.c); ok {
				t.Error("expected degenerate plane to be rejected")
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	p := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	p.Normalize()

	if l := p.Normal.Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("normal length = %v, want 1", l)
	}
	if math.Abs(p.D-2) > 1e-9 {
		t.Errorf("D = %v, want 2", p.D)
	}
}

func TestPlaneBoxOnFrontSide(t *testing.T) {
	// Plane x = 5, normal +X.
	p := Plane{Normal: math3d.V3(1, 0, 0), D: -5}
	p.finish()

	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"fully in front", NewAABB(math3d.V3(6, 0, 0), math3d.V3(8, 1, 1)), true},
		{"fully behind", NewAABB(math3d.V3(0, 0, 0), math3d.V3(4, 1, 1)), false},
		{"straddling", NewAABB(math3d.V3(4, 0, 0), math3d.V3(6, 1, 1)), true},
		{"touching", NewAABB(math3d.V3(3, 0, 0), math3d.V3(5, 1, 1)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.BoxOnFrontSide(tc.box); got != tc.expected {
				t.Errorf("BoxOnFrontSide = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestAABBBasics(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))

	if c := box.Center(); c != math3d.Zero3() {
		t.Errorf("center = %v, want origin", c)
	}
	if s := box.Size(); s != math3d.V3(2, 4, 6) {
		t.Errorf("size = %v, want (2, 4, 6)", s)
	}
	if r := box.Radius(); math.Abs(r-math.Sqrt(4+16+36)/2) > 1e-9 {
		t.Errorf("radius = %v", r)
	}
}

func TestAABBAddPoint(t *testing.T) {
	box := EmptyAABB()
	if !box.IsEmpty() {
		t.Fatal("fresh box should be empty")
	}
	box = box.AddPoint(math3d.V3(1, 2, 3))
	box = box.AddPoint(math3d.V3(-1, 0, 5))
	if box.Min != math3d.V3(-1, 0, 3) || box.Max != math3d.V3(1, 2, 5) {
		t.Errorf("bounds = %v..%v", box.Min, box.Max)
	}
}

func TestAABBDistanceToPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"inside", math3d.V3(5, 5, 5), 0},
		{"on face", math3d.V3(10, 5, 5), 0},
		{"along axis", math3d.V3(13, 5, 5), 3},
		{"from corner", math3d.V3(13, 14, 10), 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := box.DistanceToPoint(tc.point)
			if math.Abs(d-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", d, tc.expected)
			}
		})
	}
}

func TestAABBIntersects(t *testing.T) {
	a := NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10))

	tests := []struct {
		name     string
		b        AABB
		expected bool
	}{
		{"overlap", NewAABB(math3d.V3(5, 5, 5), math3d.V3(15, 15, 15)), true},
		{"touching face", NewAABB(math3d.V3(10, 0, 0), math3d.V3(20, 10, 10)), true},
		{"disjoint", NewAABB(math3d.V3(11, 0, 0), math3d.V3(20, 10, 10)), false},
		{"contained", NewAABB(math3d.V3(2, 2, 2), math3d.V3(8, 8, 8)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects = %v, want %v", got, tc.expected)
			}
		})
	}
}
