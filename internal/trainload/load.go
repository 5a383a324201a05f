package trainload

import (
	"math"

	"github.com/2beens/trainpulse/internal/activities"
)

// referenceEasyPaceMinPerKm is the pace treated as "easy effort" when
// deriving intensity from pace. Faster than this raises the multiplier.
const referenceEasyPaceMinPerKm = 6.0

// ActivityLoad converts one activity into a unitless training load scalar:
// duration in minutes, scaled by an intensity multiplier and an elevation
// factor. Activities without a positive duration contribute nothing.
func ActivityLoad(a activities.Activity) float64 {
	if a.DurationSeconds <= 0 {
		return 0
	}

	durationMinutes := float64(a.DurationSeconds) / 60

	elevationFactor := 1.0
	if a.ElevationGainMeters > 0 {
		elevationFactor = 1 + (a.ElevationGainMeters/1000)*0.1
	}

	return durationMinutes * intensityMultiplier(a) * elevationFactor
}

// intensityMultiplier picks the first available intensity signal:
// heart rate, then pace (runs only), then perceived exertion, then
// the workout class keyword fallback.
func intensityMultiplier(a activities.Activity) float64 {
	switch {
	case a.AvgHeartRate > 0:
		return math.Pow(float64(a.AvgHeartRate)/130, 1.5)
	case a.PaceMinPerKm > 0 && a.IsRun():
		return math.Pow(referenceEasyPaceMinPerKm/a.PaceMinPerKm, 1.5)
	case a.PerceivedExertion > 0:
		return float64(a.PerceivedExertion) / 5
	default:
		return classMultiplier(a.Class())
	}
}

func classMultiplier(c activities.Class) float64 {
	switch c {
	case activities.ClassInterval, activities.ClassTempo:
		return 1.5
	case activities.ClassThreshold, activities.ClassHill:
		return 1.3
	case activities.ClassLongRun:
		return 1.1
	case activities.ClassRecovery:
		return 0.8
	default:
		return 1.0
	}
}
