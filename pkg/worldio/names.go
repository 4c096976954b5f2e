package worldio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/portalvis/pkg/vis"
)

const (
	areaPrefix   = "area_"
	portalPrefix = "portal_"
)

func isAreaName(name string) bool   { return strings.HasPrefix(name, areaPrefix) }
func isPortalName(name string) bool { return strings.HasPrefix(name, portalPrefix) }

// parseAreaName splits "area_<n>" or "area_<n>_<label>" into the area
// index and optional label.
func parseAreaName(name string) (int, string, error) {
	parts := strings.Split(strings.TrimPrefix(name, areaPrefix), "_")
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("area node %q: bad index: %w", name, err)
	}
	return idx, strings.Join(parts[1:], "_"), nil
}

// parsePortalName splits "portal_<front>_<back>" into the two area
// indices, with an optional trailing state keyword ("closed", "mirror",
// "blocked", "remote").
func parsePortalName(name string) (front, back int, state vis.PortalState, err error) {
	parts := strings.Split(strings.TrimPrefix(name, portalPrefix), "_")
	if len(parts) < 2 {
		return 0, 0, 0, fmt.Errorf("portal node %q: want portal_<front>_<back>", name)
	}
	front, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("portal node %q: bad front index: %w", name, err)
	}
	back, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("portal node %q: bad back index: %w", name, err)
	}

	state = vis.PortalOpen
	if len(parts) > 2 {
		switch parts[2] {
		case "closed":
			state = vis.PortalClosed
		case "blocked":
			state = vis.PortalBlocked
		case "mirror":
			state = vis.PortalMirror
		case "remote":
			state = vis.PortalRemote
		default:
			return 0, 0, 0, fmt.Errorf("portal node %q: unknown state %q", name, parts[2])
		}
	}
	return front, back, state, nil
}
