package trainload

// Intensity is the recommended training intensity for the day.
type Intensity string

const (
	IntensityRest     Intensity = "rest"
	IntensityRecovery Intensity = "recovery"
	IntensityEasy     Intensity = "easy"
	IntensityModerate Intensity = "moderate"
	IntensityHard     Intensity = "hard"
)

const (
	// fatigue ratio above this means elevated short-term strain
	// relative to baseline fitness
	elevatedFatigueRatio = 1.2
	// TSB below this means accumulated fatigue
	deepFatigueTSB = -15
)

type Recommendation struct {
	RecommendedIntensity Intensity `json:"recommendedIntensity"`
	SuggestedWorkouts    []string  `json:"suggestedWorkouts"`
	Explanation          string    `json:"explanation"`
}

var suggestedWorkouts = map[Intensity][]string{
	IntensityRest: {
		"Complete rest day",
		"Gentle stretching or short walk",
	},
	IntensityRecovery: {
		"20-30 min very easy recovery jog",
		"Easy spin on the bike",
		"Mobility and foam rolling session",
	},
	IntensityEasy: {
		"40-60 min easy conversational-pace run",
		"Easy cross-training session",
	},
	IntensityModerate: {
		"Steady-state run at marathon effort",
		"Moderate long run",
		"Tempo run with generous recovery",
	},
	IntensityHard: {
		"Interval session, e.g. 6x800m at 5k pace",
		"Hill repeats",
		"Tempo run at threshold pace",
	},
}

// Recommend maps the current energy level (0-100) and the load metrics to
// a training intensity for the day. Energy level is the primary axis;
// fatigue ratio and training stress balance downgrade within a band.
// Pure and deterministic, safe to call concurrently.
func Recommend(energyLevel float64, metrics Metrics) Recommendation {
	fatigued := metrics.FatigueRatio > elevatedFatigueRatio

	var intensity Intensity
	var explanation string
	switch {
	case energyLevel < 25:
		intensity = IntensityRest
		explanation = "Energy is very low. Take a rest day and let the body absorb the training."
	case energyLevel < 40:
		intensity = IntensityRecovery
		explanation = "Energy is low. Keep today very light to promote recovery."
	case energyLevel < 55:
		if fatigued || metrics.TrainingStressBalance < deepFatigueTSB {
			intensity = IntensityRecovery
			explanation = "Moderate energy but elevated training stress. Keep today very light."
		} else {
			intensity = IntensityEasy
			explanation = "Moderate energy. An easy session keeps the rhythm without adding stress."
		}
	case energyLevel < 70:
		if fatigued {
			intensity = IntensityEasy
			explanation = "Decent energy but the recent load is high. Keep today easy."
		} else {
			intensity = IntensityModerate
			explanation = "Decent energy and a balanced load. A moderate session fits well today."
		}
	default:
		// covers both the 70-84 band and 85+; the fatigue check is
		// what separates moderate from hard here
		if fatigued {
			intensity = IntensityModerate
			explanation = "High energy, but the acute load is well above baseline. Hold back to moderate."
		} else {
			intensity = IntensityHard
			explanation = "High energy and a balanced load. Good day for quality work."
		}
	}

	if metrics.TrainingStressBalance < deepFatigueTSB {
		explanation += " Training stress balance is strongly negative, fatigue has been accumulating over the last week."
	} else if metrics.TrainingStressBalance > 0 && metrics.FatigueRatio < 0.8 {
		explanation += " You are well recovered relative to your fitness, absorbing training nicely."
	}

	return Recommendation{
		RecommendedIntensity: intensity,
		SuggestedWorkouts:    suggestedWorkouts[intensity],
		Explanation:          explanation,
	}
}
