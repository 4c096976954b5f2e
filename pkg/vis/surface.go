package vis

// Surface is implemented by renderable geometry that can be linked to
// an area. The visibility system never draws surfaces; it only groups
// them by containing area so the submission stage can skip whole
// groups at once.
type Surface interface {
	// Bounds returns the world-space bounding box of the surface.
	Bounds() AABB
}
