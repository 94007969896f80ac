package sentiment

import (
	"context"
	"fmt"
)

// Scorer maps review text to a polarity estimate in [-1, 1]. Implementations
// must accept empty or whitespace-only text and return a defined score for it
// rather than failing, must be safe for concurrent use, and must not mutate
// shared state per call.
type Scorer interface {
	Name() string
	Score(ctx context.Context, text string) (float64, error)
}

const snippetMaxLen = 80

// ScoringError reports that an underlying scorer failed to produce a result.
// It carries a snippet of the offending text and the original cause so the
// batch runner can surface it in the processing report.
type ScoringError struct {
	Scorer  string
	Snippet string
	Err     error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scorer %s failed on %q: %v", e.Scorer, e.Snippet, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

func newScoringError(scorer, text string, err error) *ScoringError {
	return &ScoringError{Scorer: scorer, Snippet: snippet(text), Err: err}
}

func snippet(text string) string {
	if len(text) <= snippetMaxLen {
		return text
	}
	return text[:snippetMaxLen] + "..."
}
