package vis

import (
	"github.com/taigrr/portalvis/pkg/math3d"
)

// PortalID indexes a portal in its World.
type PortalID int32

// NoPortal is the null portal reference.
const NoPortal PortalID = -1

// PortalState describes how a portal currently behaves.
type PortalState uint8

const (
	PortalOpen    PortalState = iota
	PortalClosed              // never traversed regardless of geometry
	PortalBlocked             // temporarily blocked by a door/entity
	PortalMirror              // mirror surface
	PortalRemote              // teleporter/remote view
)

// String returns the state name.
func (s PortalState) String() string {
	switch s {
	case PortalOpen:
		return "open"
	case PortalClosed:
		return "closed"
	case PortalBlocked:
		return "blocked"
	case PortalMirror:
		return "mirror"
	case PortalRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Portal is a polygonal opening connecting exactly two areas. The
// winding order of Points defines the plane; Areas[0] lies on the
// front side of that plane. Geometry is fixed at creation; State and
// Opacity may be mutated by gameplay between frames, never during a
// query.
type Portal struct {
	ID PortalID

	// Points is the portal polygon, at most MaxPortalPoints vertices.
	// Fewer than 3 marks the portal degenerate: it has no plane,
	// narrows nothing, and is conservatively treated as in-frustum.
	Points []math3d.Vec3

	Plane  Plane
	Bounds AABB
	Center math3d.Vec3
	Radius float64

	// Areas are the two bordering areas, front side first.
	Areas [2]AreaID

	State   PortalState
	Opacity float64 // 0 fully transparent .. 1 fully open, debug alpha
	// TwoSided portals are traversable from either side. One-sided
	// portals admit traversal only from the front (Areas[0]) side.
	TwoSided bool

	visQuery uint64
}

// Degenerate reports whether the portal lacks a usable polygon.
func (p *Portal) Degenerate() bool { return len(p.Points) < 3 }

// OtherArea returns the bordering area that is not from, or NoArea if
// from is not one of the portal's areas.
func (p *Portal) OtherArea(from AreaID) AreaID {
	switch from {
	case p.Areas[0]:
		return p.Areas[1]
	case p.Areas[1]:
		return p.Areas[0]
	default:
		return NoArea
	}
}

// LastVisibleQuery returns the id of the most recent query that
// traversed this portal.
func (p *Portal) LastVisibleQuery() uint64 { return p.visQuery }
