// Package worldio loads area/portal worlds from glTF files. Node names
// carry the graph structure: a node named "area_<n>" is an area hull,
// "portal_<a>_<b>" is a portal winding between two areas, and any other
// mesh node is a surface linked to the area containing it. Geometry is
// expected in world space; node transforms are not applied.
package worldio

import (
	"fmt"
	"unsafe"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/portalvis/pkg/math3d"
	"github.com/taigrr/portalvis/pkg/vis"
)

// MeshSurface is a renderable chunk of world geometry tied to one area.
type MeshSurface struct {
	Name     string
	Vertices []math3d.Vec3
	Indices  []int

	bounds vis.AABB
}

// Bounds returns the surface's world-space bounding box.
func (s *MeshSurface) Bounds() vis.AABB { return s.bounds }

// World bundles the visibility graph with the geometry it was built
// from, so a renderer can draw what the queries cull.
type World struct {
	Vis      *vis.World
	Surfaces []*MeshSurface
	Portals  []vis.PortalID
}

// Load reads a glTF or GLB file and assembles the world graph from its
// node names.
func Load(path string) (*World, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return assemble(doc)
}

type nodeGeometry struct {
	name     string
	vertices []math3d.Vec3
	indices  []int
	winding  []math3d.Vec3
	bounds   vis.AABB
}

func assemble(doc *gltf.Document) (*World, error) {
	var areas []nodeGeometry
	var portals []nodeGeometry
	var surfaces []nodeGeometry

	for _, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		geom, err := readNodeGeometry(doc, node)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", node.Name, err)
		}
		if geom == nil {
			continue
		}
		switch {
		case isAreaName(node.Name):
			areas = append(areas, *geom)
		case isPortalName(node.Name):
			portals = append(portals, *geom)
		default:
			surfaces = append(surfaces, *geom)
		}
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("no area nodes found")
	}

	// Area ids in the file must be contiguous from zero so they line
	// up with the ids the graph assigns.
	byIndex := make([]*nodeGeometry, len(areas))
	worldBounds := vis.EmptyAABB()
	for i := range areas {
		idx, _, err := parseAreaName(areas[i].name)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(areas) || byIndex[idx] != nil {
			return nil, fmt.Errorf("area indices must be contiguous from 0, got %q", areas[i].name)
		}
		byIndex[idx] = &areas[i]
		worldBounds = worldBounds.Union(areas[i].bounds)
	}

	w := vis.NewWorld(worldBounds)
	out := &World{Vis: w}

	for idx, geom := range byIndex {
		if id := w.AddArea(geom.bounds); int(id) != idx {
			return nil, fmt.Errorf("area %q: graph assigned id %d", geom.name, id)
		}
	}

	for _, geom := range portals {
		front, back, state, err := parsePortalName(geom.name)
		if err != nil {
			return nil, err
		}
		id, err := w.CreatePortal(geom.winding, vis.AreaID(front), vis.AreaID(back))
		if err != nil {
			return nil, fmt.Errorf("portal %q: %w", geom.name, err)
		}
		w.SetPortalState(id, state)
		out.Portals = append(out.Portals, id)
	}

	for i := range surfaces {
		s := &MeshSurface{
			Name:     surfaces[i].name,
			Vertices: surfaces[i].vertices,
			Indices:  surfaces[i].indices,
			bounds:   surfaces[i].bounds,
		}
		w.LinkSurfaceToArea(s)
		out.Surfaces = append(out.Surfaces, s)
	}

	return out, nil
}

// readNodeGeometry pulls the triangle geometry of a node's mesh.
// Returns nil for meshes with no triangle primitives.
func readNodeGeometry(doc *gltf.Document, node *gltf.Node) (*nodeGeometry, error) {
	m := doc.Meshes[*node.Mesh]
	geom := &nodeGeometry{name: node.Name, bounds: vis.EmptyAABB()}

	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		base := len(geom.vertices)
		geom.vertices = append(geom.vertices, positions...)
		for _, p := range positions {
			geom.bounds = geom.bounds.AddPoint(p)
		}

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
			for _, idx := range indices {
				geom.indices = append(geom.indices, base+idx)
			}
		} else {
			for i := range positions {
				geom.indices = append(geom.indices, base+i)
			}
		}
	}
	if len(geom.vertices) == 0 {
		return nil, nil
	}
	geom.winding = dedupWinding(geom.vertices)
	return geom, nil
}

// dedupWinding collapses repeated positions while keeping first-seen
// order. Portal quads export each corner once in the vertex buffer, so
// the surviving order is the authored winding.
func dedupWinding(points []math3d.Vec3) []math3d.Vec3 {
	out := make([]math3d.Vec3, 0, len(points))
	seen := make(map[math3d.Vec3]struct{}, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// readVec3Accessor reads Vec3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

// readIndices reads index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

// readAccessorData reads raw data from a glTF accessor.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, fmt.Errorf("external buffers not supported")
	}
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}

		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return *(*float32)(unsafe.Pointer(&bits))
}
