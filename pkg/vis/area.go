package vis

import (
	"github.com/taigrr/portalvis/pkg/math3d"
)

// AreaID indexes an area in its World. Cross-references between areas
// and portals are indices into the World's arenas, not pointers.
type AreaID int32

// NoArea is the null area reference.
const NoArea AreaID = -1

// Area is a convex region of the static world, the unit of visibility.
// Areas are created at world-load time and live until the world is
// discarded; only their surface list and derived bounds change after
// that, and their frame stamps during queries.
type Area struct {
	ID     AreaID
	Bounds AABB
	Center math3d.Vec3
	Radius float64

	// Portals bordering this area, at most MaxAreaPortals.
	Portals []PortalID

	// Surfaces owned by this area, linked after load.
	Surfaces []Surface

	SkyArea bool // contains sky surfaces
	Outside bool // exterior area
	FogNum  int  // fog volume index, -1 for none

	// Monotonic query stamps. An area is visible in query q exactly
	// when visQuery == q.id; stamps never need a reset pass.
	visQuery     uint64
	queriedQuery uint64
}

// LastVisibleQuery returns the id of the most recent query that found
// this area visible.
func (a *Area) LastVisibleQuery() uint64 { return a.visQuery }

// LastQueriedQuery returns the id of the most recent query that
// examined this area.
func (a *Area) LastQueriedQuery() uint64 { return a.queriedQuery }
