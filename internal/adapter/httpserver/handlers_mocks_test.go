package httpserver

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"reviewpulse/internal/domain"
	"reviewpulse/internal/platform/config"
	"reviewpulse/internal/sentiment"
)

// mockAppService implements appService with injectable behavior per method.
type mockAppService struct {
	analyzeFunc func(ctx context.Context, text string, rating int) (*domain.SentimentRecord, error)
	batchFunc   func(ctx context.Context, inputs []domain.ReviewInput) (*sentiment.BatchReport, error)
	themesFunc  func(text, app string) []string
	listFunc    func(ctx context.Context, app string, flaggedOnly bool) ([]domain.Review, error)
}

func (m *mockAppService) AnalyzeReview(ctx context.Context, text string, rating int) (*domain.SentimentRecord, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, text, rating)
	}
	return &domain.SentimentRecord{Label: domain.LabelNeutral, RuleLabel: domain.LabelNeutral}, nil
}

func (m *mockAppService) AnalyzeBatch(ctx context.Context, inputs []domain.ReviewInput) (*sentiment.BatchReport, error) {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, inputs)
	}
	return &sentiment.BatchReport{Records: make([]*domain.SentimentRecord, len(inputs))}, nil
}

func (m *mockAppService) TagThemes(text, app string) []string {
	if m.themesFunc != nil {
		return m.themesFunc(text, app)
	}
	return []string{"Other"}
}

func (m *mockAppService) ListReviews(ctx context.Context, app string, flaggedOnly bool) ([]domain.Review, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, app, flaggedOnly)
	}
	return nil, nil
}

type serverOption func(*Server)

func withHealthChecks(checks ...HealthCheck) serverOption {
	return func(s *Server) { s.healthChecks = checks }
}

func newTestServer(t *testing.T, app appService, opts ...serverOption) *Server {
	t.Helper()
	cfg := &config.Config{Port: "0", MaxBatchSize: 10}
	srv := NewServer(cfg, app, nil, nil, nil)
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
