package sentiment

import (
	"context"

	"github.com/jonboulle/clockwork"
)

// DurationObserver receives per-call scorer timings.
type DurationObserver interface {
	ObserveScorerDuration(scorer string, seconds float64)
}

// TimedScorer decorates a scorer with duration observation. Failed calls are
// timed too; a slow failure is still a slow call.
type TimedScorer struct {
	inner    Scorer
	observer DurationObserver
	clock    clockwork.Clock
}

// NewTimedScorer wraps inner with timing observation.
func NewTimedScorer(inner Scorer, observer DurationObserver, clock clockwork.Clock) *TimedScorer {
	return &TimedScorer{inner: inner, observer: observer, clock: clock}
}

func (s *TimedScorer) Name() string { return s.inner.Name() }

func (s *TimedScorer) Score(ctx context.Context, text string) (float64, error) {
	start := s.clock.Now()
	value, err := s.inner.Score(ctx, text)
	s.observer.ObserveScorerDuration(s.Name(), s.clock.Since(start).Seconds())
	return value, err
}
