package activities

import (
	"strings"
	"time"
)

// Activity is one logged workout. Optional fields (heart rate, pace,
// exertion, elevation, distance) use the zero value when not provided.
type Activity struct {
	ID                  int       `json:"id"`
	Type                string    `json:"type"`
	DistanceKm          float64   `json:"distanceKm"`
	DurationSeconds     int       `json:"durationSeconds"`
	AvgHeartRate        int       `json:"avgHeartRate"`
	MaxHeartRate        int       `json:"maxHeartRate"`
	PaceMinPerKm        float64   `json:"paceMinPerKm"`
	ElevationGainMeters float64   `json:"elevationGainMeters"`
	PerceivedExertion   int       `json:"perceivedExertion"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Class is the workout classification derived from the free-text
// activity type. Downstream scoring switches on this instead of
// re-matching substrings all over the place.
type Class string

const (
	ClassInterval  Class = "interval"
	ClassTempo     Class = "tempo"
	ClassThreshold Class = "threshold"
	ClassHill      Class = "hill"
	ClassLongRun   Class = "long"
	ClassRecovery  Class = "recovery"
	ClassRun       Class = "run"
	ClassOther     Class = "other"
)

// Classify maps a free-text activity type to its Class. Matching is
// case-insensitive substring, checked from the most to the least
// specific keyword, so "long interval run" classifies as interval.
func Classify(activityType string) Class {
	t := strings.ToLower(activityType)
	switch {
	case strings.Contains(t, "interval"), strings.Contains(t, "speed"):
		return ClassInterval
	case strings.Contains(t, "tempo"):
		return ClassTempo
	case strings.Contains(t, "threshold"):
		return ClassThreshold
	case strings.Contains(t, "hill"):
		return ClassHill
	case strings.Contains(t, "long"):
		return ClassLongRun
	case strings.Contains(t, "easy"), strings.Contains(t, "recovery"):
		return ClassRecovery
	case strings.Contains(t, "run"):
		return ClassRun
	default:
		return ClassOther
	}
}

// IsRun reports whether the activity type describes a run of any kind.
func IsRun(activityType string) bool {
	return strings.Contains(strings.ToLower(activityType), "run")
}

func (a Activity) Class() Class {
	return Classify(a.Type)
}

func (a Activity) IsRun() bool {
	return IsRun(a.Type)
}

// Day is the activity's calendar day bucket.
func (a Activity) Day() time.Time {
	return a.CreatedAt.Truncate(24 * time.Hour)
}
