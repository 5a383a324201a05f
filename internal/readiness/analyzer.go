package readiness

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
	"github.com/2beens/trainpulse/internal/goals"
	"github.com/2beens/trainpulse/internal/trainload"
)

// SubScore is one readiness dimension: a 0-100 score plus the advice
// shown when the dimension needs work.
type SubScore struct {
	Score  float64 `json:"score"`
	Advice string  `json:"advice,omitempty"`
}

// subScoreFunc is the uniform signature all readiness dimensions share,
// so they can be scored and tuned independently and combined by one
// weighted-sum reducer.
type subScoreFunc func(
	history []activities.Activity,
	goal goals.Goal,
	metrics trainload.Metrics,
	now time.Time,
) SubScore

type scoredDimension struct {
	label  string
	weight float64
	score  subScoreFunc
}

// dimension weights sum to 1; long run endurance matters most,
// consistency is the smallest nudge
var dimensions = []scoredDimension{
	{"long runs", 0.30, longRunScore},
	{"weekly volume", 0.25, volumeScore},
	{"workout specificity", 0.20, workoutsScore},
	{"taper", 0.15, taperScore},
	{"consistency", 0.10, consistencyScore},
}

const (
	strengthThreshold = 80
	weaknessThreshold = 50
	adviceThreshold   = 70
	// taper advice only makes sense once the race is actually close
	taperAdviceMaxDays = 14
)

// Report is the complete race readiness assessment.
type Report struct {
	Score           int                 `json:"score"`
	SubScores       map[string]SubScore `json:"subScores"`
	Strengths       []string            `json:"strengths"`
	Weaknesses      []string            `json:"weaknesses"`
	Recommendations []string            `json:"recommendations"`
	Projection      string              `json:"projection,omitempty"`
}

// Analyze scores the activity history against the race goal. Pure and
// deterministic given "now", safe to call concurrently.
func Analyze(
	history []activities.Activity,
	goal goals.Goal,
	metrics trainload.Metrics,
	now time.Time,
) Report {
	report := Report{
		SubScores:       make(map[string]SubScore, len(dimensions)),
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}

	daysUntilRace := goal.DaysUntil(now)

	var composite float64
	for _, dim := range dimensions {
		subScore := dim.score(history, goal, metrics, now)
		report.SubScores[dim.label] = subScore
		composite += subScore.Score * dim.weight

		if subScore.Score >= strengthThreshold {
			report.Strengths = append(report.Strengths, dim.label)
		} else if subScore.Score <= weaknessThreshold {
			report.Weaknesses = append(report.Weaknesses, dim.label)
		}

		if subScore.Score < adviceThreshold && subScore.Advice != "" {
			if dim.label == "taper" && daysUntilRace > taperAdviceMaxDays {
				continue
			}
			report.Recommendations = append(report.Recommendations, subScore.Advice)
		}
	}

	report.Score = int(math.Round(math.Max(0, math.Min(100, composite))))

	if daysUntilRace >= 0 && daysUntilRace <= taperWindowDays {
		report.Projection = projection(report.Score, goal, daysUntilRace)
	}

	return report
}

// projection is the narrative shown in the final three weeks before the
// race, tiered by the composite score.
func projection(score int, goal goals.Goal, daysUntilRace int) string {
	var outlook string
	switch {
	case score >= 85:
		outlook = "You are in excellent shape and set up for a strong race."
	case score >= 70:
		outlook = "You are well prepared; a solid performance is within reach."
	case score >= 55:
		outlook = "Preparation is decent but uneven; expect a steady rather than fast race."
	default:
		outlook = "Readiness is low for this goal; consider adjusting expectations or the race plan."
	}

	narrative := fmt.Sprintf("%d days to race day. %s", daysUntilRace, outlook)

	if goal.TargetTime != "" {
		if score >= 70 {
			narrative += fmt.Sprintf(" Your target of %s looks realistic.", goal.TargetTime)
		} else {
			narrative += fmt.Sprintf(" Your target of %s looks ambitious given current training.", goal.TargetTime)
		}
	}

	return narrative
}
