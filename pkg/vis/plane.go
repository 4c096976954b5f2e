// Package vis implements portal-based visibility determination for a
// statically partitioned world. The world is a graph of convex areas
// connected by polygonal portals; each frame a query walks the graph
// from the viewer's area, narrowing the view frustum and screen-space
// scissor through every open portal it crosses, and produces the
// ordered set of areas and portals the camera can actually see.
package vis

import (
	"github.com/taigrr/portalvis/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation:
// Normal·p + D = 0. Points with Normal·p + D > 0 are in front.
type Plane struct {
	Normal math3d.Vec3
	D      float64

	// signBits has bit i set when component i of the normal is
	// negative. Precomputed so box tests can pick the relevant AABB
	// corner without branching on the normal each time.
	signBits uint8
}

// PlaneFromPoints builds the plane through three points, with the
// normal following the right-hand rule of the winding a→b→c.
// Returns false if the points are collinear (or coincident).
func PlaneFromPoints(a, b, c math3d.Vec3) (Plane, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-9 {
		return Plane{}, false
	}
	n = n.Normalize()
	p := Plane{Normal: n, D: -n.Dot(a)}
	p.finish()
	return p, true
}

// Normalize scales the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
	p.finish()
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

func (p *Plane) finish() {
	var bits uint8
	if p.Normal.X < 0 {
		bits |= 1
	}
	if p.Normal.Y < 0 {
		bits |= 2
	}
	if p.Normal.Z < 0 {
		bits |= 4
	}
	p.signBits = bits
}

// BoxOnFrontSide reports whether any part of the box is on the front
// side of the plane. It tests only the corner furthest along the
// normal, selected via the precomputed sign bits.
func (p Plane) BoxOnFrontSide(box AABB) bool {
	var v math3d.Vec3
	if p.signBits&1 == 0 {
		v.X = box.Max.X
	} else {
		v.X = box.Min.X
	}
	if p.signBits&2 == 0 {
		v.Y = box.Max.Y
	} else {
		v.Y = box.Min.Y
	}
	if p.signBits&4 == 0 {
		v.Z = box.Max.Z
	} else {
		v.Z = box.Min.Z
	}
	return p.DistanceToPoint(v) >= 0
}
