package domain

// Label is a categorical sentiment classification.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Numeric maps a label onto the signed scale the disagreement flagger
// compares ensemble scores against: positive=+1, neutral=0, negative=-1.
func (l Label) Numeric() float64 {
	switch l {
	case LabelPositive:
		return 1
	case LabelNegative:
		return -1
	default:
		return 0
	}
}

// Valid reports whether l is one of the three known labels.
func (l Label) Valid() bool {
	return l == LabelPositive || l == LabelNeutral || l == LabelNegative
}

// ScoreTriple holds the raw output of the three scorers, each in [-1, 1].
// Produced fresh per review and never persisted on its own.
type ScoreTriple struct {
	Bert     float64
	Vader    float64
	Textblob float64
}

// SentimentRecord is the engine's sole output unit, one per input review.
// The JSON field names are a contract with the persistence layer and must
// not change.
type SentimentRecord struct {
	Bert        float64 `json:"bert"`
	Vader       float64 `json:"vader"`
	Textblob    float64 `json:"textblob"`
	Ensemble    float64 `json:"ensemble"`
	Label       Label   `json:"label"`
	Uncertainty float64 `json:"uncertainty"`
	RuleLabel   Label   `json:"rule_label"`
	Flag        bool    `json:"flag"`
}
