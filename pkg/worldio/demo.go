package worldio

import (
	"github.com/taigrr/portalvis/pkg/math3d"
	"github.com/taigrr/portalvis/pkg/vis"
)

// DemoWorld builds a small hand-made level for running without a world
// file: four rooms in a hallway along +X with doorway portals, a side
// room off the second hallway room, and a mirror on the far wall.
func DemoWorld() *World {
	w := vis.NewWorld(vis.NewAABB(math3d.V3(-20, -20, -20), math3d.V3(120, 40, 60)))
	out := &World{Vis: w}

	var rooms []vis.AreaID
	for i := range 4 {
		x := float64(i) * 20
		bounds := vis.NewAABB(math3d.V3(x, 0, 0), math3d.V3(x+20, 10, 20))
		rooms = append(rooms, w.AddArea(bounds))
		out.addBoxSurface("hall", bounds)
	}

	// Doorways between hallway rooms. Windings face +X, so the far
	// room is the front side.
	for i := range 3 {
		x := float64(i+1) * 20
		id, err := w.CreatePortal([]math3d.Vec3{
			math3d.V3(x, 2, 8), math3d.V3(x, 8, 8),
			math3d.V3(x, 8, 12), math3d.V3(x, 2, 12),
		}, rooms[i+1], rooms[i])
		if err != nil {
			panic(err)
		}
		out.Portals = append(out.Portals, id)
	}

	// Side room off the second hallway room, through the z=20 wall.
	sideBounds := vis.NewAABB(math3d.V3(20, 0, 20), math3d.V3(40, 10, 30))
	side := w.AddArea(sideBounds)
	out.addBoxSurface("side", sideBounds)
	id, err := w.CreatePortal([]math3d.Vec3{
		math3d.V3(24, 2, 20), math3d.V3(36, 2, 20),
		math3d.V3(36, 8, 20), math3d.V3(24, 8, 20),
	}, side, rooms[1])
	if err != nil {
		panic(err)
	}
	out.Portals = append(out.Portals, id)

	// Mirror on the far wall of the last room, facing back down the
	// hallway.
	id, err = w.CreatePortal([]math3d.Vec3{
		math3d.V3(80, 2, 8), math3d.V3(80, 2, 12),
		math3d.V3(80, 8, 12), math3d.V3(80, 8, 8),
	}, rooms[3], rooms[3])
	if err != nil {
		panic(err)
	}
	w.SetPortalState(id, vis.PortalMirror)
	out.Portals = append(out.Portals, id)

	return out
}

// addBoxSurface appends a box-shaped surface and links it into the
// graph.
func (out *World) addBoxSurface(name string, b vis.AABB) {
	s := &MeshSurface{Name: name, bounds: b}
	for i := range 8 {
		s.Vertices = append(s.Vertices, b.Corner(i))
	}
	// Two triangles per face, corners indexed by axis bits.
	faces := [6][4]int{
		{0, 1, 3, 2}, {4, 6, 7, 5}, // z
		{0, 4, 5, 1}, {2, 3, 7, 6}, // y
		{0, 2, 6, 4}, {1, 5, 7, 3}, // x
	}
	for _, f := range faces {
		s.Indices = append(s.Indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	out.Surfaces = append(out.Surfaces, s)
	out.Vis.LinkSurfaceToArea(s)
}
