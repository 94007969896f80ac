package sentiment

import (
	"math"

	"reviewpulse/internal/domain"
)

// DefaultFlagThreshold is the minimum numeric distance between the ensemble
// score and the rule label's numeric value required to flag a disagreement.
const DefaultFlagThreshold = 0.5

// AllowedLabels maps a declared star rating to the set of labels it can
// legitimately support. Ratings of 3 and above carry no constraint.
func AllowedLabels(rating int) map[domain.Label]bool {
	switch {
	case rating >= 3:
		return map[domain.Label]bool{
			domain.LabelPositive: true,
			domain.LabelNeutral:  true,
			domain.LabelNegative: true,
		}
	case rating == 2:
		return map[domain.Label]bool{
			domain.LabelNeutral:  true,
			domain.LabelNegative: true,
		}
	default:
		return map[domain.Label]bool{domain.LabelNegative: true}
	}
}

// Reconcile resolves the ensemble label against the rating's allowed set.
// An admissible label passes through unchanged; anything else falls back to
// neutral. The fallback applies even for rating=1, where neutral is itself
// outside the allowed set. Known policy quirk, kept intentionally until
// product owners redefine the rule.
func Reconcile(label domain.Label, rating int) domain.Label {
	if AllowedLabels(rating)[label] {
		return label
	}
	return domain.LabelNeutral
}

// FlagDisagreement decides whether a review needs manual attention.
// Label mismatch alone is not enough; the ensemble score must also sit more
// than threshold away from the rule label's numeric value.
func FlagDisagreement(label, ruleLabel domain.Label, ensemble, threshold float64) bool {
	return label != ruleLabel && math.Abs(ensemble-ruleLabel.Numeric()) > threshold
}
