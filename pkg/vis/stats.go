package vis

import "fmt"

// QueryStats are the diagnostic counters of a single query.
type QueryStats struct {
	AreasChecked    int // areas whose portals were examined
	PortalsChecked  int // portals examined (closed portals excluded)
	SurfacesChecked int // surfaces in areas marked visible
	MaxDepth        int // deepest recursion level reached
}

// WorldStats is an on-demand snapshot of the world's cumulative
// counters.
type WorldStats struct {
	Areas           int
	Portals         int
	VisibleAreas    int // from the most recent query
	VisiblePortals  int // from the most recent query
	MaxDepthReached int // cumulative watermark, never reset
}

// Stats returns the current world statistics.
func (w *World) Stats() WorldStats {
	return WorldStats{
		Areas:           len(w.areas),
		Portals:         len(w.portals),
		VisibleAreas:    w.totalAreasVisible,
		VisiblePortals:  w.totalPortalsVisible,
		MaxDepthReached: w.maxDepthReached,
	}
}

// String formats the statistics for diagnostics output.
func (s WorldStats) String() string {
	return fmt.Sprintf("areas %d/%d portals %d/%d visible %d traversed %d maxdepth %d",
		s.Areas, MaxAreas, s.Portals, MaxPortals,
		s.VisibleAreas, s.VisiblePortals, s.MaxDepthReached)
}
