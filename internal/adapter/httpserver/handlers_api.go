package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewpulse/internal/domain"
	apperrors "reviewpulse/internal/platform/errors"
	"reviewpulse/internal/sentiment"
)

func (s *Server) registerAPIRoutes() {
	s.echo.POST("/api/analyze", s.handleAnalyze)
	s.echo.POST("/api/batches", s.handleBatch)
	s.echo.GET("/api/reviews", s.handleListReviews)
	s.echo.POST("/api/themes", s.handleThemes)
}

type analyzeRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	ctx := c.Request().Context()

	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	record, err := s.app.AnalyzeReview(ctx, req.Text, req.Rating)
	if err != nil {
		return mapAnalysisError(err)
	}

	if err := c.JSON(http.StatusOK, record); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type batchRequest struct {
	Reviews []analyzeRequest `json:"reviews"`
}

func (s *Server) handleBatch(c echo.Context) error {
	ctx := c.Request().Context()

	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Reviews) == 0 {
		return apperrors.ValidationError("batch must contain at least one review")
	}
	if len(req.Reviews) > s.config.MaxBatchSize {
		return apperrors.ValidationError("batch exceeds maximum size").
			WithField("size", len(req.Reviews)).
			WithField("max", s.config.MaxBatchSize)
	}

	inputs := make([]domain.ReviewInput, len(req.Reviews))
	for i, r := range req.Reviews {
		inputs[i] = domain.ReviewInput{Text: r.Text, Rating: r.Rating}
	}

	report, err := s.app.AnalyzeBatch(ctx, inputs)
	if err != nil {
		return mapAnalysisError(err)
	}

	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	app := c.QueryParam("app")
	if app == "" {
		return apperrors.ValidationError("query parameter 'app' is required")
	}
	flaggedOnly := c.QueryParam("flagged") == "true"

	reviews, err := s.app.ListReviews(ctx, app, flaggedOnly)
	if errors.Is(err, domain.ErrReviewNotFound) {
		return apperrors.NotFoundError("no reviews found").WithField("app", app)
	}
	if err != nil {
		return apperrors.InternalError("failed to list reviews", err).WithField("app", app)
	}

	if err := c.JSON(http.StatusOK, map[string]any{"reviews": reviews}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type themesRequest struct {
	Text string `json:"text"`
	App  string `json:"app"`
}

func (s *Server) handleThemes(c echo.Context) error {
	var req themesRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Text == "" {
		return apperrors.ValidationError("field 'text' is required")
	}

	themes := s.app.TagThemes(req.Text, req.App)
	if err := c.JSON(http.StatusOK, map[string]any{"themes": themes}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// mapAnalysisError translates engine and batch errors into structured errors
// so the middleware emits the right status code.
func mapAnalysisError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRating):
		return apperrors.ValidationError("rating must be between 1 and 5")
	case errors.Is(err, domain.ErrMissingText):
		return apperrors.ValidationError("review text must not be empty")
	case errors.Is(err, domain.ErrEmptyBatch):
		return apperrors.ValidationError("batch must contain at least one review")
	}

	var scoringErr *sentiment.ScoringError
	if errors.As(err, &scoringErr) {
		return apperrors.ScoringError("sentiment scoring failed", err).
			WithField("scorer", scoringErr.Scorer)
	}
	return apperrors.InternalError("analysis failed", err)
}
