package readiness

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
	"github.com/2beens/trainpulse/internal/goals"
	"github.com/2beens/trainpulse/internal/trainload"
)

// target long run distance per race band, km
var longRunTargetKm = map[RaceBand]float64{
	Band5K:       10,
	Band10K:      15,
	BandHalf:     25,
	BandMarathon: 35,
}

const longRunTrailingWeeks = 8

// longRunScore compares the average of the 3 longest weekly-longest runs
// over the trailing 8 weeks against the band target.
func longRunScore(history []activities.Activity, goal goals.Goal, _ trainload.Metrics, now time.Time) SubScore {
	band := BandOf(ParseDistance(goal.TargetDistance))
	target := longRunTargetKm[band]

	longest := weeklyLongestRuns(history, now, longRunTrailingWeeks)
	sort.Sort(sort.Reverse(sort.Float64Slice(longest)))
	avgTop3 := mean(longest[:3])

	score := math.Min(100, avgTop3/target*100)

	return SubScore{
		Score: score,
		Advice: fmt.Sprintf(
			"Build the weekly long run gradually toward %.0f km; your recent long runs average %.1f km.",
			target, avgTop3,
		),
	}
}
