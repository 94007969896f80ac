package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"reviewpulse/internal/platform/retry"
)

// inferenceRequest is the payload sent to the SST-2 inference endpoint.
type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// classProbability is one entry of the endpoint's response: a class label
// with its softmax probability.
type classProbability struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// httpStatusError lets the retry classifier distinguish rate limiting and
// server errors from permanent client errors.
type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("inference endpoint returned status %d", e.status)
}

// BertScorer scores text against a remote SST-2 fine-tuned transformer:
// score = P(positive) - P(negative). Calls are rate limited, retried with
// backoff, and guarded by a circuit breaker so a degraded model server
// cannot stall whole batches.
type BertScorer struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	policy   retry.Policy
}

// BertOption customizes a BertScorer.
type BertOption func(*BertScorer)

// WithHTTPClient substitutes the HTTP client (tests inject httptest clients).
func WithHTTPClient(client *http.Client) BertOption {
	return func(s *BertScorer) { s.client = client }
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) BertOption {
	return func(s *BertScorer) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(p retry.Policy) BertOption {
	return func(s *BertScorer) { s.policy = p }
}

// NewBertScorer creates a remote transformer scorer for the given endpoint.
func NewBertScorer(endpoint string, opts ...BertOption) *BertScorer {
	s := &BertScorer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(20), 21),
		policy: retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   200 * time.Millisecond,
			RateLimitBackoff: 2 * time.Second,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Warn("Retrying inference call", "attempt", attempt, "backoff", backoff, "error", err)
			},
		},
	}

	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "bert-inference",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.TotalFailures*10 >= counts.Requests*6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "component", name, "from", from.String(), "to", to.String())
		},
	})

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BertScorer) Name() string { return "bert" }

// Warmup verifies the inference endpoint can score at all. A failure here is
// a configuration error: the service must not start batch processing.
func (s *BertScorer) Warmup(ctx context.Context) error {
	if _, err := s.Score(ctx, "warmup"); err != nil {
		return fmt.Errorf("inference endpoint %s unavailable: %w", s.endpoint, err)
	}
	return nil
}

// Score calls the inference endpoint and collapses the class probabilities
// into a signed score in [-1, 1]. Empty text scores 0 without a call.
func (s *BertScorer) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, newScoringError(s.Name(), text, err)
	}

	result, err := s.breaker.Execute(func() (any, error) {
		return retry.Do(ctx, s.policy, classifyInferenceError, func() (float64, error) {
			return s.call(ctx, text)
		})
	})
	if err != nil {
		return 0, newScoringError(s.Name(), text, err)
	}

	return result.(float64), nil
}

func (s *BertScorer) call(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("inference call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, &httpStatusError{status: resp.StatusCode}
	}

	var classes []classProbability
	if err := json.NewDecoder(resp.Body).Decode(&classes); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	var pPositive, pNegative float64
	for _, c := range classes {
		switch strings.ToUpper(c.Label) {
		case "POSITIVE":
			pPositive = c.Score
		case "NEGATIVE":
			pNegative = c.Score
		}
	}
	if pPositive == 0 && pNegative == 0 {
		return 0, fmt.Errorf("response carries no POSITIVE/NEGATIVE classes")
	}

	return clamp(pPositive-pNegative, -1, 1), nil
}

// classifyInferenceError: 429 waits out the rate limit, server errors and
// transport failures retry, other HTTP statuses are permanent.
func classifyInferenceError(err error) retry.Action {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.status == http.StatusTooManyRequests:
			return retry.After
		case statusErr.status >= 500:
			return retry.Retry
		default:
			return retry.Stop
		}
	}
	return retry.Retry
}
