package readiness

import (
	"math"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
)

// weeksAgo buckets an activity day into a trailing week index relative
// to "now": 0 for the last 7 days, 1 for the week before, and so on.
// Negative for future days.
func weeksAgo(day, now time.Time) int {
	daysAgo := int(now.Truncate(24*time.Hour).Sub(day.Truncate(24*time.Hour)).Hours() / 24)
	if daysAgo < 0 {
		return -1
	}
	return daysAgo / 7
}

// weeklyLongestRuns returns the longest run distance per trailing week,
// index 0 being the current week. Weeks without runs stay at zero.
func weeklyLongestRuns(history []activities.Activity, now time.Time, weeks int) []float64 {
	longest := make([]float64, weeks)
	for _, a := range history {
		if !a.IsRun() || a.DistanceKm <= 0 {
			continue
		}
		week := weeksAgo(a.CreatedAt, now)
		if week < 0 || week >= weeks {
			continue
		}
		if a.DistanceKm > longest[week] {
			longest[week] = a.DistanceKm
		}
	}
	return longest
}

// weeklyRunStats returns run counts and total run distance per trailing
// week, index 0 being the current week.
func weeklyRunStats(history []activities.Activity, now time.Time, weeks int) (counts []float64, volumes []float64) {
	counts = make([]float64, weeks)
	volumes = make([]float64, weeks)
	for _, a := range history {
		if !a.IsRun() {
			continue
		}
		week := weeksAgo(a.CreatedAt, now)
		if week < 0 || week >= weeks {
			continue
		}
		counts[week]++
		volumes[week] += a.DistanceKm
	}
	return counts, volumes
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// coefficientOfVariation is stddev/mean; zero for a zero mean, since a
// fully empty window should read as "no signal", not infinite variance.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	var sumSquares float64
	for _, v := range values {
		diff := v - m
		sumSquares += diff * diff
	}
	stddev := math.Sqrt(sumSquares / float64(len(values)))
	return stddev / m
}
