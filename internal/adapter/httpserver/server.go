// Package httpserver exposes the scoring pipeline over HTTP.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"reviewpulse/internal/adapter/metrics"
	"reviewpulse/internal/domain"
	"reviewpulse/internal/platform/config"
	"reviewpulse/internal/sentiment"
)

// appService is the subset of application operations the handlers need.
type appService interface {
	AnalyzeReview(ctx context.Context, text string, rating int) (*domain.SentimentRecord, error)
	AnalyzeBatch(ctx context.Context, inputs []domain.ReviewInput) (*sentiment.BatchReport, error)
	TagThemes(text, app string) []string
	ListReviews(ctx context.Context, app string, flaggedOnly bool) ([]domain.Review, error)
}

// Server wires echo, the application service, and operational endpoints.
type Server struct {
	echo   *echo.Echo
	config *config.Config

	app            appService
	metricsHandler http.Handler
	httpMetrics    *metrics.HTTPMetrics
	healthChecks   []HealthCheck
	startTime      time.Time
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(cfg *config.Config, app appService, metricsHandler http.Handler, httpMetrics *metrics.HTTPMetrics, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:           e,
		config:         cfg,
		app:            app,
		metricsHandler: metricsHandler,
		httpMetrics:    httpMetrics,
		healthChecks:   healthChecks,
		startTime:      time.Now(),
	}

	srv.registerRoutes()
	return srv
}

// Start begins serving and blocks until shutdown.
func (s *Server) Start() error {
	if err := s.echo.Start(":" + s.config.Port); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
