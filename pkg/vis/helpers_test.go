package vis

import (
	"image"
	"math"

	"github.com/taigrr/portalvis/pkg/math3d"
)

// lookView builds a 90-degree test view at origin facing forward.
func lookView(origin, forward math3d.Vec3) View {
	f := forward.Normalize()
	r := f.Cross(math3d.Up()).Normalize()
	u := r.Cross(f)
	return PerspectiveView(
		origin,
		[3]math3d.Vec3{f, r, u},
		math.Pi/2, math.Pi/2,
		0.1, 1000,
		image.Rect(0, 0, 640, 480),
	)
}

// quadX returns a square winding in the plane x = x, spanning
// [lo, hi] in Y and Z, wound so the plane normal points +X.
func quadX(x, lo, hi float64) []math3d.Vec3 {
	return []math3d.Vec3{
		math3d.V3(x, lo, lo),
		math3d.V3(x, hi, lo),
		math3d.V3(x, hi, hi),
		math3d.V3(x, lo, hi),
	}
}

// unitBoxAt returns a small box centered on p, for point-like
// frustum probes.
func unitBoxAt(p math3d.Vec3) AABB {
	e := math3d.V3(0.01, 0.01, 0.01)
	return NewAABB(p.Sub(e), p.Add(e))
}
