package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reviewpulse/internal/domain"
)

// Engine runs the full reconciliation pass for a single review: three scorer
// invocations, ensemble aggregation, uncertainty, rating rule resolution and
// disagreement flagging. Scorers are injected so tests can substitute doubles
// and so model resources are loaded once and shared read-only.
type Engine struct {
	bert          Scorer
	vader         Scorer
	textblob      Scorer
	flagThreshold float64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithFlagThreshold overrides the disagreement flag threshold. Tests only;
// production keeps the default policy value.
func WithFlagThreshold(threshold float64) Option {
	return func(e *Engine) { e.flagThreshold = threshold }
}

// NewEngine creates an engine over the three scorers, in the fixed order
// bert, vader, textblob.
func NewEngine(bert, vader, textblob Scorer, opts ...Option) *Engine {
	e := &Engine{
		bert:          bert,
		vader:         vader,
		textblob:      textblob,
		flagThreshold: DefaultFlagThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateInput checks the per-record contract: text present, rating in [1,5].
func ValidateInput(in domain.ReviewInput) error {
	if strings.TrimSpace(in.Text) == "" {
		return domain.ErrMissingText
	}
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidRating, in.Rating)
	}
	return nil
}

// Analyze scores one review and assembles the full sentiment record.
// The rating must be in [1,5]; text may be empty at this level (the scorers
// return a defined score for it), the batch contract is enforced upstream.
func (e *Engine) Analyze(ctx context.Context, text string, rating int) (*domain.SentimentRecord, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidRating, rating)
	}

	triple, err := e.scoreAll(ctx, text)
	if err != nil {
		return nil, err
	}

	ensemble := Ensemble(triple)
	label := LabelFor(ensemble)
	ruleLabel := Reconcile(label, rating)

	return &domain.SentimentRecord{
		Bert:        triple.Bert,
		Vader:       triple.Vader,
		Textblob:    triple.Textblob,
		Ensemble:    ensemble,
		Label:       label,
		Uncertainty: Uncertainty(triple),
		RuleLabel:   ruleLabel,
		Flag:        FlagDisagreement(label, ruleLabel, ensemble, e.flagThreshold),
	}, nil
}

func (e *Engine) scoreAll(ctx context.Context, text string) (domain.ScoreTriple, error) {
	var triple domain.ScoreTriple
	var err error

	if triple.Bert, err = e.score(ctx, e.bert, text); err != nil {
		return triple, err
	}
	if triple.Vader, err = e.score(ctx, e.vader, text); err != nil {
		return triple, err
	}
	if triple.Textblob, err = e.score(ctx, e.textblob, text); err != nil {
		return triple, err
	}
	return triple, nil
}

func (e *Engine) score(ctx context.Context, s Scorer, text string) (float64, error) {
	value, err := s.Score(ctx, text)
	if err != nil {
		var scoringErr *ScoringError
		if errors.As(err, &scoringErr) {
			return 0, err
		}
		return 0, newScoringError(s.Name(), text, err)
	}
	return value, nil
}
