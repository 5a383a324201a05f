package readiness

import (
	"strconv"
	"strings"
)

// RaceBand groups race distances into the four classic road race
// categories; all readiness targets are keyed by band.
type RaceBand int

const (
	Band5K RaceBand = iota
	Band10K
	BandHalf
	BandMarathon
)

func (b RaceBand) String() string {
	switch b {
	case Band5K:
		return "5k"
	case Band10K:
		return "10k"
	case BandHalf:
		return "half marathon"
	case BandMarathon:
		return "marathon"
	}
	return "unknown"
}

const defaultRaceDistanceKm = 10

// ParseDistance extracts a race distance in km from a free-text
// descriptor like "10k", "half marathon" or "25 km trail race".
// Best-effort substring matching, falling back to the first numeric
// token, then to 10 km. "half" must be checked before "marathon".
func ParseDistance(descriptor string) float64 {
	d := strings.ToLower(descriptor)
	switch {
	case strings.Contains(d, "5k"):
		return 5
	case strings.Contains(d, "10k"):
		return 10
	case strings.Contains(d, "half"), strings.Contains(d, "13.1"):
		return 21.0975
	case strings.Contains(d, "marathon"), strings.Contains(d, "26.2"), strings.Contains(d, "42"):
		return 42.195
	}

	for _, token := range strings.Fields(d) {
		token = strings.TrimSuffix(token, "km")
		if km, err := strconv.ParseFloat(token, 64); err == nil && km > 0 {
			return km
		}
	}

	return defaultRaceDistanceKm
}

// BandOf maps a race distance to its band.
func BandOf(distanceKm float64) RaceBand {
	switch {
	case distanceKm < 8:
		return Band5K
	case distanceKm < 15:
		return Band10K
	case distanceKm < 30:
		return BandHalf
	default:
		return BandMarathon
	}
}
