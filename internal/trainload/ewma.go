package trainload

import (
	"math"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
)

// Decay constants of the two exponential moving averages: time constants
// of 7 days (acute, short-term fatigue) and 42 days (chronic, fitness).
var (
	acuteDecay   = math.Exp(-1.0 / 7)
	chronicDecay = math.Exp(-1.0 / 42)
)

// Metrics is the rolling physiological load model, recomputed per call
// and never persisted.
type Metrics struct {
	AcuteLoad             float64 `json:"acuteLoad"`
	ChronicLoad           float64 `json:"chronicLoad"`
	TrainingStressBalance float64 `json:"trainingStressBalance"`
	FatigueRatio          float64 `json:"fatigueRatio"`
}

// Calculate derives the load metrics from an activity history over a
// trailing daily window ending at "now". An empty history yields all-zero
// metrics with a neutral fatigue ratio of 1.
func Calculate(history []activities.Activity, windowDays int, now time.Time) Metrics {
	if len(history) == 0 {
		return Metrics{FatigueRatio: 1}
	}
	return MetricsFromSeries(DailySeries(history, windowDays, now))
}

// MetricsFromSeries runs both EMAs over a daily load series ordered
// oldest to newest, seeding each with the oldest value. The relative
// weighting of recent vs old days emerges from running the recurrence
// across the whole window.
func MetricsFromSeries(series []float64) Metrics {
	if len(series) == 0 {
		return Metrics{FatigueRatio: 1}
	}

	acute := series[0]
	chronic := series[0]
	for _, d := range series[1:] {
		acute = acute*acuteDecay + d*(1-acuteDecay)
		chronic = chronic*chronicDecay + d*(1-chronicDecay)
	}

	metrics := Metrics{
		AcuteLoad:             acute,
		ChronicLoad:           chronic,
		TrainingStressBalance: chronic - acute,
		FatigueRatio:          1,
	}
	if chronic > 0 {
		metrics.FatigueRatio = acute / chronic
	}

	return metrics
}
