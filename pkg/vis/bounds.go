package vis

import (
	"math"

	"github.com/taigrr/portalvis/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that any AddPoint call will
// initialize, so bounds can be accumulated without a seed point.
func EmptyAABB() AABB {
	return AABB{
		Min: math3d.V3(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: math3d.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// IsEmpty reports whether the box has never been extended.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// AddPoint grows the box to include p.
func (b AABB) AddPoint(p math3d.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Radius returns the radius of the bounding sphere around the center.
func (b AABB) Radius() float64 {
	return b.Size().Len() * 0.5
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether the two boxes overlap or touch.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// DistanceToPoint returns the distance from p to the closest point on
// the box, zero if p is inside.
func (b AABB) DistanceToPoint(p math3d.Vec3) float64 {
	closest := p.Max(b.Min).Min(b.Max)
	return p.Distance(closest)
}

// Corner returns corner i (0..7) of the box. Bit 0 selects max X,
// bit 1 max Y, bit 2 max Z.
func (b AABB) Corner(i int) math3d.Vec3 {
	v := b.Min
	if i&1 != 0 {
		v.X = b.Max.X
	}
	if i&2 != 0 {
		v.Y = b.Max.Y
	}
	if i&4 != 0 {
		v.Z = b.Max.Z
	}
	return v
}
