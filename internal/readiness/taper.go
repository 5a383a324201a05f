package readiness

import (
	"math"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
	"github.com/2beens/trainpulse/internal/goals"
	"github.com/2beens/trainpulse/internal/trainload"
)

// taperWindowDays is how far out the taper sub-score starts to apply.
const taperWindowDays = 21

// idealTaperState is the target load state at a given distance from race
// day: the closer the race, the fresher (higher TSB, lower fatigue
// ratio) the runner should be.
func idealTaperState(daysUntilRace int) (idealTSB, idealFatigueRatio float64) {
	switch {
	case daysUntilRace <= 7:
		return 15, 0.8
	case daysUntilRace <= 14:
		return 10, 0.9
	default:
		return 5, 1.0
	}
}

// taperScore measures how far the current load state is from the ideal
// taper state. Not applicable (full score) further than 21 days out.
// TSB distance costs 2 points per unit, fatigue ratio distance 100
// points per unit, blended 60/40.
func taperScore(_ []activities.Activity, goal goals.Goal, metrics trainload.Metrics, now time.Time) SubScore {
	daysUntilRace := goal.DaysUntil(now)
	if daysUntilRace > taperWindowDays {
		return SubScore{Score: 100}
	}

	idealTSB, idealFatigueRatio := idealTaperState(daysUntilRace)

	tsbScore := math.Max(0, 100-2*math.Abs(metrics.TrainingStressBalance-idealTSB))
	fatigueScore := math.Max(0, 100-100*math.Abs(metrics.FatigueRatio-idealFatigueRatio))

	return SubScore{
		Score:  0.6*tsbScore + 0.4*fatigueScore,
		Advice: "Reduce training volume in the final weeks so fatigue clears before race day; keep a little intensity to stay sharp.",
	}
}
