package sentiment

import (
	"math"

	"reviewpulse/internal/domain"
)

// Label thresholds applied to the ensemble score. These are policy constants
// (matching the cutoffs the scoring tools were calibrated against), not
// tunable hyperparameters.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Ensemble returns the equal-weight mean of the three scores.
func Ensemble(t domain.ScoreTriple) float64 {
	return (t.Bert + t.Vader + t.Textblob) / 3
}

// LabelFor classifies an ensemble score. Both thresholds are inclusive:
// exactly +0.05 is positive and exactly -0.05 is negative.
func LabelFor(ensemble float64) domain.Label {
	switch {
	case ensemble >= positiveThreshold:
		return domain.LabelPositive
	case ensemble <= negativeThreshold:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

// Uncertainty is the population standard deviation of the three scores.
// Diagnostic only; it does not feed the label or flag decisions.
func Uncertainty(t domain.ScoreTriple) float64 {
	mean := Ensemble(t)
	variance := (sq(t.Bert-mean) + sq(t.Vader-mean) + sq(t.Textblob-mean)) / 3
	return math.Sqrt(variance)
}

func sq(x float64) float64 { return x * x }
