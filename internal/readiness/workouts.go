package readiness

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
	"github.com/2beens/trainpulse/internal/goals"
	"github.com/2beens/trainpulse/internal/trainload"
)

const workoutsTrailingWeeks = 8

// workoutTargets holds the target session counts over the trailing 8
// weeks, and how heavily each workout kind weighs for the race band.
// Short races lean on intervals, long races on tempo work.
type workoutTargets struct {
	tempo    float64
	interval float64
	hill     float64

	tempoWeight    float64
	intervalWeight float64
	hillWeight     float64
}

var workoutTargetsByBand = map[RaceBand]workoutTargets{
	Band5K:       {tempo: 6, interval: 10, hill: 4, tempoWeight: 0.3, intervalWeight: 0.5, hillWeight: 0.2},
	Band10K:      {tempo: 8, interval: 8, hill: 4, tempoWeight: 0.4, intervalWeight: 0.4, hillWeight: 0.2},
	BandHalf:     {tempo: 10, interval: 6, hill: 4, tempoWeight: 0.5, intervalWeight: 0.3, hillWeight: 0.2},
	BandMarathon: {tempo: 12, interval: 4, hill: 4, tempoWeight: 0.6, intervalWeight: 0.2, hillWeight: 0.2},
}

// workoutsScore counts tempo/threshold, interval/speed and hill sessions
// in the trailing 8 weeks and scores each count against the race-type
// target, blended with race-type weights.
func workoutsScore(history []activities.Activity, goal goals.Goal, _ trainload.Metrics, now time.Time) SubScore {
	band := BandOf(ParseDistance(goal.TargetDistance))
	targets := workoutTargetsByBand[band]

	var tempoCount, intervalCount, hillCount float64
	for _, a := range history {
		week := weeksAgo(a.CreatedAt, now)
		if week < 0 || week >= workoutsTrailingWeeks {
			continue
		}
		switch a.Class() {
		case activities.ClassTempo, activities.ClassThreshold:
			tempoCount++
		case activities.ClassInterval:
			intervalCount++
		case activities.ClassHill:
			hillCount++
		}
	}

	tempoScore := math.Min(100, tempoCount/targets.tempo*100)
	intervalScore := math.Min(100, intervalCount/targets.interval*100)
	hillScore := math.Min(100, hillCount/targets.hill*100)

	score := tempoScore*targets.tempoWeight +
		intervalScore*targets.intervalWeight +
		hillScore*targets.hillWeight

	weakest := "tempo"
	switch {
	case intervalScore <= tempoScore && intervalScore <= hillScore:
		weakest = "interval"
	case hillScore <= tempoScore && hillScore <= intervalScore:
		weakest = "hill"
	}

	return SubScore{
		Score: score,
		Advice: fmt.Sprintf(
			"Add more race-specific quality sessions, %s work in particular, when preparing for a %s.",
			weakest, band,
		),
	}
}
