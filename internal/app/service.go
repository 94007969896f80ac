package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"reviewpulse/internal/adapter/metrics"
	"reviewpulse/internal/domain"
	"reviewpulse/internal/sentiment"
	"reviewpulse/internal/themes"
)

// Service is the application layer, the only component that references
// multiple domain components. It orchestrates all use cases.
type Service struct {
	engine  *sentiment.Engine
	runner  *sentiment.Runner
	tagger  *themes.Tagger
	reviews domain.ReviewRepository
	metrics *metrics.ScoringMetrics
	clock   clockwork.Clock
}

// NewService creates the application layer service. reviews may be nil when
// no database is configured (file-pipeline mode); m may be nil in tests.
func NewService(engine *sentiment.Engine, runner *sentiment.Runner, tagger *themes.Tagger, reviews domain.ReviewRepository, m *metrics.ScoringMetrics, clock clockwork.Clock) *Service {
	return &Service{
		engine:  engine,
		runner:  runner,
		tagger:  tagger,
		reviews: reviews,
		metrics: m,
		clock:   clock,
	}
}

// AnalyzeReview scores one (text, rating) pair.
func (s *Service) AnalyzeReview(ctx context.Context, text string, rating int) (*domain.SentimentRecord, error) {
	start := s.clock.Now()
	record, err := s.engine.Analyze(ctx, text, rating)
	if err != nil {
		s.countResult("error")
		return nil, err
	}

	s.countResult("ok")
	if s.metrics != nil {
		s.metrics.BatchDuration.Observe(s.clock.Since(start).Seconds())
		if record.Flag {
			s.metrics.FlagsRaised.Inc()
		}
	}
	return record, nil
}

// AnalyzeBatch scores a batch of inputs and returns the processing report.
func (s *Service) AnalyzeBatch(ctx context.Context, inputs []domain.ReviewInput) (*sentiment.BatchReport, error) {
	report, err := s.runner.Run(ctx, inputs)
	if err != nil {
		return nil, err
	}
	s.recordReport(report)
	return report, nil
}

// ScoreReviews runs the full pipeline over cleaned reviews: batch scoring,
// theme tagging, and (when a repository is configured) persistence. The
// returned slice is index-aligned with the input; reviews whose record
// failed keep a nil Sentiment and appear in the report's failure list.
func (s *Service) ScoreReviews(ctx context.Context, reviews []domain.Review) ([]domain.Review, *sentiment.BatchReport, error) {
	inputs := make([]domain.ReviewInput, len(reviews))
	for i, review := range reviews {
		inputs[i] = review.Input()
	}

	report, err := s.runner.Run(ctx, inputs)
	if err != nil {
		return nil, nil, err
	}
	s.recordReport(report)

	augmented := make([]domain.Review, len(reviews))
	var scored []domain.Review
	for i, review := range reviews {
		review.Sentiment = report.Records[i]
		review.Themes = s.tagger.Tag(review.Text, review.App)
		augmented[i] = review
		if review.Sentiment != nil {
			scored = append(scored, review)
		}
	}

	if s.reviews != nil && len(scored) > 0 {
		written, err := s.reviews.InsertBatch(ctx, scored)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to persist augmented reviews: %w", err)
		}
		slog.InfoContext(ctx, "Persisted augmented reviews", "written", written, "batch_id", report.ID)
	}

	return augmented, report, nil
}

// TagThemes tags ad-hoc text for the given app.
func (s *Service) TagThemes(text, app string) []string {
	return s.tagger.Tag(text, app)
}

// ListReviews returns persisted augmented reviews for one app.
func (s *Service) ListReviews(ctx context.Context, app string, flaggedOnly bool) ([]domain.Review, error) {
	if s.reviews == nil {
		return nil, domain.ErrReviewNotFound
	}
	return s.reviews.ListByApp(ctx, app, flaggedOnly)
}

func (s *Service) recordReport(report *sentiment.BatchReport) {
	if s.metrics == nil {
		return
	}
	s.metrics.BatchDuration.Observe(report.Duration.Seconds())
	for _, record := range report.Records {
		if record == nil {
			continue
		}
		s.metrics.ReviewsProcessed.WithLabelValues("ok").Inc()
		if record.Flag {
			s.metrics.FlagsRaised.Inc()
		}
	}
	for range report.Failures {
		s.metrics.ReviewsProcessed.WithLabelValues("failed").Inc()
	}
}

func (s *Service) countResult(result string) {
	if s.metrics != nil {
		s.metrics.ReviewsProcessed.WithLabelValues(result).Inc()
	}
}
