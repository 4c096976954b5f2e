package vis

import (
	"github.com/taigrr/portalvis/pkg/math3d"
)

// Base frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is a convex volume bounded by planes whose normals point
// inward. A fresh view frustum has the 6 planes of the camera; portal
// traversal appends up to 4 silhouette planes per crossed portal,
// narrowing the volume to the solid angle the opening subtends.
type Frustum struct {
	Planes []Plane
}

// silhouettePlanesPerPortal caps how many edge planes a single portal
// may contribute when narrowing.
const silhouettePlanesPerPortal = 4

// FrustumFromMatrix extracts the 6 frustum planes from a combined
// view-projection matrix using the Gribb/Hartmann method. The
// resulting planes have inward-pointing unit normals.
func FrustumFromMatrix(m math3d.Mat4) Frustum {
	row0 := m.Row(0)
	row1 := m.Row(1)
	row2 := m.Row(2)
	row3 := m.Row(3)

	planes := make([]Plane, 6, 6+silhouettePlanesPerPortal*MaxPortalDepth)
	set := func(i int, r math3d.Vec4) {
		planes[i] = Plane{Normal: r.Vec3(), D: r.W}
		planes[i].Normalize()
	}
	set(FrustumLeft, row3.Add(row0))
	set(FrustumRight, row3.Sub(row0))
	set(FrustumBottom, row3.Add(row1))
	set(FrustumTop, row3.Sub(row1))
	set(FrustumNear, row3.Add(row2))
	set(FrustumFar, row3.Sub(row2))

	return Frustum{Planes: planes}
}

// IntersectsAABB tests if the box is at least partially inside the
// frustum, using the positive-vertex rejection per plane. Conservative:
// may report true for boxes outside near a frustum corner.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for i := range f.Planes {
		if !f.Planes[i].BoxOnFrontSide(box) {
			return false
		}
	}
	return true
}

// PolygonVisible reports whether the polygon could intersect the
// frustum. A polygon is rejected only when every vertex lies behind a
// single plane; anything else, including a degenerate polygon with
// fewer than 3 points, is conservatively visible.
func (f Frustum) PolygonVisible(points []math3d.Vec3) bool {
	if len(points) < 3 {
		return true
	}
	for i := range f.Planes {
		p := &f.Planes[i]
		behind := 0
		for _, pt := range points {
			if p.DistanceToPoint(pt) < 0 {
				behind++
			} else {
				break
			}
		}
		if behind == len(points) {
			return false
		}
	}
	return true
}

// Narrow returns a copy of the frustum with up to 4 additional planes,
// one per polygon edge, each passing through origin and that edge and
// oriented so the whole polygon is on its front side. Edges whose
// cross product is near zero contribute nothing; a polygon with fewer
// than 3 points narrows nothing.
func (f Frustum) Narrow(origin math3d.Vec3, points []math3d.Vec3) Frustum {
	planes := make([]Plane, len(f.Planes), len(f.Planes)+silhouettePlanesPerPortal)
	copy(planes, f.Planes)
	out := Frustum{Planes: planes}
	if len(points) < 3 {
		return out
	}

	// Polygon interior reference for orienting each edge plane.
	center := math3d.Zero3()
	for _, pt := range points {
		center = center.Add(pt)
	}
	center = center.Scale(1.0 / float64(len(points)))

	added := 0
	for i := 0; i < len(points) && added < silhouettePlanesPerPortal; i++ {
		j := (i + 1) % len(points)
		n := points[i].Sub(origin).Cross(points[j].Sub(origin))
		if n.Len() < 1e-6 {
			continue
		}
		n = n.Normalize()
		pl := Plane{Normal: n, D: -n.Dot(origin)}
		if pl.DistanceToPoint(center) < 0 {
			pl.Normal = pl.Normal.Negate()
			pl.D = -pl.D
		}
		pl.finish()
		out.Planes = append(out.Planes, pl)
		added++
	}
	return out
}
