package readiness

import (
	"math"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
	"github.com/2beens/trainpulse/internal/goals"
	"github.com/2beens/trainpulse/internal/trainload"
)

const (
	consistencyTrailingWeeks = 12
	// with fewer than 3 runs per week on average, consistency can't
	// score above this
	lowFrequencyCap = 60
)

// consistencyScore penalizes variability of weekly run count and volume
// over the trailing 12 weeks, plus a flat penalty per week without any
// running.
func consistencyScore(history []activities.Activity, _ goals.Goal, _ trainload.Metrics, now time.Time) SubScore {
	counts, volumes := weeklyRunStats(history, now, consistencyTrailingWeeks)

	runCountCV := coefficientOfVariation(counts)
	volumeCV := coefficientOfVariation(volumes)

	zeroWeeks := 0.0
	for _, c := range counts {
		if c == 0 {
			zeroWeeks++
		}
	}

	score := 100 - 40*runCountCV - 20*volumeCV - 10*zeroWeeks
	score = math.Max(0, math.Min(100, score))

	if mean(counts) < 3 {
		score = math.Min(score, lowFrequencyCap)
	}

	return SubScore{
		Score:  score,
		Advice: "Aim for a steady weekly routine of at least 3 runs; regularity matters more than any single big week.",
	}
}
