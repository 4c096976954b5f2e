package vis

// Capacity limits for the portal graph and per-query state. Exceeding
// any of them degrades by truncation, never by failure: excess entries
// are dropped with a one-time warning on the package logger.
const (
	MaxAreas        = 1024
	MaxPortals      = 2048
	MaxAreaPortals  = 32
	MaxAreaSurfaces = 1024
	MaxPortalPoints = 32
	MaxPortalDepth  = 16
	MaxVisibleAreas = 256
)
