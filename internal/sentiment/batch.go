package sentiment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"reviewpulse/internal/domain"
)

// FailurePolicy controls how the runner reacts to a record-level error.
type FailurePolicy int

const (
	// ContinueOnError skips the failing record, records it in the report,
	// and keeps processing. This is the default.
	ContinueOnError FailurePolicy = iota
	// AbortOnError cancels the whole batch on the first record failure.
	AbortOnError
)

const defaultWorkers = 4

// Failure describes one record the runner could not score.
type Failure struct {
	Index   int    `json:"index"`
	Snippet string `json:"snippet"`
	Reason  string `json:"reason"`
	Err     error  `json:"-"`
}

// BatchReport is the outcome of one batch pass. Records is index-aligned with
// the input sequence; a nil entry marks a record listed in Failures. Failed
// records are never silently dropped.
type BatchReport struct {
	ID       uuid.UUID                 `json:"id"`
	Records  []*domain.SentimentRecord `json:"records"`
	Failures []Failure                 `json:"failures"`
	Duration time.Duration             `json:"duration"`
}

// Succeeded returns the number of successfully scored records.
func (r *BatchReport) Succeeded() int {
	return len(r.Records) - len(r.Failures)
}

// Runner applies the engine across a batch with bounded parallelism.
// Records are independent, so the pass is an order-preserving parallel map:
// each worker writes its result to a fixed slot, no cross-record state.
type Runner struct {
	engine  *Engine
	workers int
	policy  FailurePolicy
	clock   clockwork.Clock
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithWorkers bounds the number of concurrent scorer invocations.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithFailurePolicy selects the batch failure isolation policy.
func WithFailurePolicy(p FailurePolicy) RunnerOption {
	return func(r *Runner) { r.policy = p }
}

// WithClock substitutes the clock used for duration accounting.
func WithClock(clock clockwork.Clock) RunnerOption {
	return func(r *Runner) { r.clock = clock }
}

// NewRunner creates a batch runner over the given engine.
func NewRunner(engine *Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:  engine,
		workers: defaultWorkers,
		policy:  ContinueOnError,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scores every input and assembles the report. Input order is preserved
// one-to-one in Records. Under ContinueOnError the returned error is always
// nil and per-record errors land in the report; under AbortOnError the first
// record error cancels the remaining work and is returned.
func (r *Runner) Run(ctx context.Context, inputs []domain.ReviewInput) (*BatchReport, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	start := r.clock.Now()
	report := &BatchReport{
		ID:      uuid.New(),
		Records: make([]*domain.SentimentRecord, len(inputs)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, in := range inputs {
		g.Go(func() error {
			record, err := r.processOne(gctx, in)
			if err != nil {
				if r.policy == AbortOnError {
					return fmt.Errorf("record %d: %w", i, err)
				}
				mu.Lock()
				report.Failures = append(report.Failures, Failure{
					Index:   i,
					Snippet: snippet(in.Text),
					Reason:  err.Error(),
					Err:     err,
				})
				mu.Unlock()
				return nil
			}
			report.Records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Workers append failures in completion order, which is nondeterministic.
	sort.Slice(report.Failures, func(a, b int) bool {
		return report.Failures[a].Index < report.Failures[b].Index
	})
	report.Duration = r.clock.Since(start)
	return report, nil
}

func (r *Runner) processOne(ctx context.Context, in domain.ReviewInput) (*domain.SentimentRecord, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	return r.engine.Analyze(ctx, in.Text, in.Rating)
}
