package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewpulse/internal/domain"
)

// stubScorer returns a fixed score or error for every text.
type stubScorer struct {
	name  string
	score float64
	err   error
}

func (s stubScorer) Name() string { return s.name }

func (s stubScorer) Score(context.Context, string) (float64, error) {
	return s.score, s.err
}

func newTestEngine(bert, vader, textblob float64) *Engine {
	return NewEngine(
		stubScorer{name: "bert", score: bert},
		stubScorer{name: "vader", score: vader},
		stubScorer{name: "textblob", score: textblob},
	)
}

func TestEngineAnalyze_AssemblesFullRecord(t *testing.T) {
	engine := newTestEngine(0.9, 0.6, 0.3)

	record, err := engine.Analyze(context.Background(), "love this app", 5)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, record.Bert, 1e-12)
	assert.InDelta(t, 0.6, record.Vader, 1e-12)
	assert.InDelta(t, 0.3, record.Textblob, 1e-12)
	assert.InDelta(t, 0.6, record.Ensemble, 1e-12)
	assert.Equal(t, domain.LabelPositive, record.Label)
	assert.Equal(t, domain.LabelPositive, record.RuleLabel)
	assert.False(t, record.Flag)
	assert.Greater(t, record.Uncertainty, 0.0)
}

func TestEngineAnalyze_FlagsUnanimousPositiveAtRatingOne(t *testing.T) {
	engine := newTestEngine(1, 1, 1)

	record, err := engine.Analyze(context.Background(), "best app ever", 1)
	require.NoError(t, err)

	assert.Equal(t, domain.LabelPositive, record.Label)
	assert.Equal(t, domain.LabelNeutral, record.RuleLabel)
	assert.True(t, record.Flag)
	assert.Zero(t, record.Uncertainty)
}

func TestEngineAnalyze_NeutralRecord(t *testing.T) {
	engine := newTestEngine(0.01, -0.02, 0.01)

	record, err := engine.Analyze(context.Background(), "it exists", 3)
	require.NoError(t, err)

	assert.Equal(t, domain.LabelNeutral, record.Label)
	assert.Equal(t, domain.LabelNeutral, record.RuleLabel)
	assert.False(t, record.Flag)
}

func TestEngineAnalyze_InvalidRating(t *testing.T) {
	engine := newTestEngine(0, 0, 0)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := engine.Analyze(context.Background(), "some text", rating)
		assert.ErrorIs(t, err, domain.ErrInvalidRating, "rating %d", rating)
	}
}

func TestEngineAnalyze_ScorerFailureWrapped(t *testing.T) {
	cause := errors.New("model unavailable")
	engine := NewEngine(
		stubScorer{name: "bert", err: cause},
		stubScorer{name: "vader", score: 0.5},
		stubScorer{name: "textblob", score: 0.5},
	)

	_, err := engine.Analyze(context.Background(), "any text", 4)
	require.Error(t, err)

	var scoringErr *ScoringError
	require.ErrorAs(t, err, &scoringErr)
	assert.Equal(t, "bert", scoringErr.Scorer)
	assert.ErrorIs(t, err, cause)
}

func TestEngineAnalyze_PreWrappedScorerErrorNotDoubleWrapped(t *testing.T) {
	inner := &ScoringError{Scorer: "bert", Snippet: "x", Err: errors.New("boom")}
	engine := NewEngine(
		stubScorer{name: "bert", err: inner},
		stubScorer{name: "vader", score: 0},
		stubScorer{name: "textblob", score: 0},
	)

	_, err := engine.Analyze(context.Background(), "x", 3)

	var scoringErr *ScoringError
	require.ErrorAs(t, err, &scoringErr)
	assert.Equal(t, inner, scoringErr)
}

func TestEngineAnalyze_CustomFlagThreshold(t *testing.T) {
	engine := NewEngine(
		stubScorer{name: "bert", score: 0.3},
		stubScorer{name: "vader", score: 0.3},
		stubScorer{name: "textblob", score: 0.3},
		WithFlagThreshold(0.1),
	)

	record, err := engine.Analyze(context.Background(), "pretty good", 2)
	require.NoError(t, err)

	// Positive label, rating 2 forces neutral, |0.3 - 0| > 0.1.
	assert.Equal(t, domain.LabelNeutral, record.RuleLabel)
	assert.True(t, record.Flag)
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   domain.ReviewInput
		wantErr error
	}{
		{"valid", domain.ReviewInput{Text: "works fine", Rating: 4}, nil},
		{"empty text", domain.ReviewInput{Text: "", Rating: 4}, domain.ErrMissingText},
		{"whitespace text", domain.ReviewInput{Text: "   \t\n", Rating: 4}, domain.ErrMissingText},
		{"rating too low", domain.ReviewInput{Text: "ok", Rating: 0}, domain.ErrInvalidRating},
		{"rating too high", domain.ReviewInput{Text: "ok", Rating: 6}, domain.ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
