package model

import (
	"fmt"
	"math"
)

// Version is a schema generation number. Documents store it as a decimal in
// thousandths (0.301), the engine works with the scaled integer (301).
type Version int

const (
	VersionUnknown Version = 0
	V0_1           Version = 100
	V0_2           Version = 200
	V0_3           Version = 300
	V0_3_1         Version = 301

	CurrentVersion = V0_3_1
)

// KnownVersions lists every generation in ascending order.
func KnownVersions() []Version {
	return []Version{V0_1, V0_2, V0_3, V0_3_1}
}

func (v Version) String() string {
	switch v {
	case VersionUnknown:
		return "unknown"
	case V0_1:
		return "0.1"
	case V0_2:
		return "0.2"
	case V0_3:
		return "0.3"
	case V0_3_1:
		return "0.3.1"
	default:
		return fmt.Sprintf("generation %d", int(v))
	}
}

// Decimal is the form written to the main table.
func (v Version) Decimal() float64 {
	return float64(v) / 1000
}

// ScaleStoredVersion turns a stored decimal into a generation number. Values
// below 1 are thousandths.
func ScaleStoredVersion(stored float64) int {
	if stored < 1 {
		return int(math.Round(stored * 1000))
	}
	return int(math.Round(stored))
}

// NearestKnownVersion maps a generation number onto the highest known
// generation not above it. exact is false when the number had to be adjusted.
func NearestKnownVersion(generation int) (v Version, exact bool) {
	known := KnownVersions()
	if generation < int(known[0]) {
		return known[0], false
	}
	v = known[0]
	for _, k := range known {
		if int(k) <= generation {
			v = k
		}
	}
	return v, int(v) == generation
}
