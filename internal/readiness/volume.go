package readiness

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
	"github.com/2beens/trainpulse/internal/goals"
	"github.com/2beens/trainpulse/internal/trainload"
)

// target weekly running volume per race band, km per week
var volumeTargetKm = map[RaceBand]float64{
	Band5K:       30,
	Band10K:      40,
	BandHalf:     60,
	BandMarathon: 80,
}

const volumeTrailingWeeks = 4

// volumeScore compares the average weekly running volume over the
// trailing 4 weeks against the band target.
func volumeScore(history []activities.Activity, goal goals.Goal, _ trainload.Metrics, now time.Time) SubScore {
	band := BandOf(ParseDistance(goal.TargetDistance))
	target := volumeTargetKm[band]

	_, volumes := weeklyRunStats(history, now, volumeTrailingWeeks)
	avgVolume := mean(volumes)

	score := math.Min(100, avgVolume/target*100)

	return SubScore{
		Score: score,
		Advice: fmt.Sprintf(
			"Weekly volume averages %.0f km; work toward %.0f km per week for a %s.",
			avgVolume, target, band,
		),
	}
}
