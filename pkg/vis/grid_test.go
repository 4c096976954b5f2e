package vis

import (
	"testing"

	"github.com/taigrr/portalvis/pkg/math3d"
)

func TestPointInArea(t *testing.T) {
	w := NewWorld(NewAABB(math3d.V3(-50, -50, -50), math3d.V3(50, 50, 50)))
	// Four non-overlapping boxes in a 2x2 arrangement.
	var ids [4]AreaID
	for i := range 4 {
		x := float64(i%2) * 10
		z := float64(i/2) * 10
		ids[i] = w.AddArea(NewAABB(math3d.V3(x, 0, z), math3d.V3(x+10, 10, z+10)))
	}

	tests := []struct {
		name  string
		point math3d.Vec3
		want  AreaID
	}{
		{"first box", math3d.V3(5, 5, 5), ids[0]},
		{"second box", math3d.V3(15, 5, 5), ids[1]},
		{"third box", math3d.V3(5, 5, 15), ids[2]},
		{"fourth box", math3d.V3(15, 5, 15), ids[3]},
		{"above everything", math3d.V3(5, 20, 5), NoArea},
		{"outside world", math3d.V3(500, 0, 0), NoArea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.PointInArea(tt.point); got != tt.want {
				t.Errorf("PointInArea(%v) = %v, want %v", tt.point, got, tt.want)
			}
			// Second lookup exercises the cache path.
			if got := w.PointInArea(tt.point); got != tt.want {
				t.Errorf("cached PointInArea(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestPointInAreaOutsideGridBounds(t *testing.T) {
	// An area sticking out past the locator bounds is still found via
	// the linear fallback.
	w := NewWorld(NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10)))
	a := w.AddArea(NewAABB(math3d.V3(-20, 0, 0), math3d.V3(10, 10, 10)))

	if got := w.PointInArea(math3d.V3(-15, 5, 5)); got != a {
		t.Errorf("PointInArea outside grid = %v, want %v", got, a)
	}
}

func TestPointInAreaStaleCache(t *testing.T) {
	w := NewWorld(NewAABB(math3d.V3(-50, -50, -50), math3d.V3(50, 50, 50)))
	a := w.AddArea(NewAABB(math3d.V3(1, 0, 0), math3d.V3(10, 10, 10)))

	// Warm the cell, then probe a point in the same cell but outside
	// the cached area. The cache must be revalidated, not trusted.
	// Cells are 100/64 units wide, so both points share a cell.
	inside := math3d.V3(1.2, 0.5, 0.5)
	if got := w.PointInArea(inside); got != a {
		t.Fatalf("warmup lookup = %v, want %v", got, a)
	}
	outside := math3d.V3(0.5, 0.5, 0.5)
	if got := w.PointInArea(outside); got != NoArea {
		t.Errorf("PointInArea(%v) = %v, want NoArea", outside, got)
	}
}

func TestNearestArea(t *testing.T) {
	w := NewWorld(NewAABB(math3d.V3(-50, -50, -50), math3d.V3(50, 50, 50)))

	if got := w.NearestArea(math3d.V3(0, 0, 0)); got != NoArea {
		t.Fatalf("empty world nearest = %v, want NoArea", got)
	}

	a := w.AddArea(NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10)))
	b := w.AddArea(NewAABB(math3d.V3(30, 0, 0), math3d.V3(40, 10, 10)))

	tests := []struct {
		name  string
		point math3d.Vec3
		want  AreaID
	}{
		{"inside first", math3d.V3(5, 5, 5), a},
		{"just past first", math3d.V3(12, 5, 5), a},
		{"closer to second", math3d.V3(28, 5, 5), b},
		{"far beyond second", math3d.V3(100, 5, 5), b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.NearestArea(tt.point); got != tt.want {
				t.Errorf("NearestArea(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}
