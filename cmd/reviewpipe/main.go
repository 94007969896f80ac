// Command reviewpipe scores a CSV of scraped reviews offline. It reads raw
// rows, cleans them, runs the sentiment pipeline, tags themes, and writes
// the augmented rows back out. With -database-url it also persists the
// scored reviews.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"reviewpulse/internal/adapter/csvfile"
	"reviewpulse/internal/adapter/postgres"
	"reviewpulse/internal/app"
	"reviewpulse/internal/cleaning"
	"reviewpulse/internal/domain"
	"reviewpulse/internal/platform/correlation"
	"reviewpulse/internal/platform/logging"
	"reviewpulse/internal/sentiment"
	"reviewpulse/internal/themes"
)

func main() {
	inPath := flag.String("in", "", "input CSV of scraped reviews (required)")
	outPath := flag.String("out", "", "output CSV for augmented reviews (required)")
	inferenceURL := flag.String("inference-url", os.Getenv("INFERENCE_URL"), "SST-2 inference endpoint (defaults to INFERENCE_URL)")
	databaseURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "optional Postgres URL to persist scored reviews")
	workers := flag.Int("workers", 4, "batch scoring parallelism")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logging.Init(*logLevel, "text")

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *inferenceURL == "" {
		slog.Error("Inference endpoint is required, set -inference-url or INFERENCE_URL")
		os.Exit(2)
	}

	ctx := correlation.WithID(context.Background(), correlation.NewID())

	if err := run(ctx, *inPath, *outPath, *inferenceURL, *databaseURL, *workers); err != nil {
		slog.ErrorContext(ctx, "Pipeline run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inPath, outPath, inferenceURL, databaseURL string, workers int) error {
	clock := clockwork.NewRealClock()

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	raw, err := csvfile.ReadReviews(in)
	if err != nil {
		return fmt.Errorf("failed to read reviews: %w", err)
	}

	cleaned, report := cleaning.Clean(raw)
	report.Log(slog.Default())
	if len(cleaned) == 0 {
		return fmt.Errorf("no usable reviews after cleaning %d rows", report.Input)
	}

	var repo domain.ReviewRepository
	if databaseURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := postgres.Connect(connectCtx, databaseURL)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = postgres.RunMigrationsWithLock(migrateCtx, pool)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		repo = postgres.NewReviewRepo(pool)
	}

	vader, err := sentiment.NewVaderScorer()
	if err != nil {
		return fmt.Errorf("failed to load vader lexicon: %w", err)
	}
	textblob, err := sentiment.NewPatternScorer()
	if err != nil {
		return fmt.Errorf("failed to load polarity lexicon: %w", err)
	}
	bert := sentiment.NewBertScorer(inferenceURL,
		sentiment.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)

	warmupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = bert.Warmup(warmupCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("inference endpoint warmup failed: %w", err)
	}

	engine := sentiment.NewEngine(bert, vader, textblob)
	runner := sentiment.NewRunner(engine,
		sentiment.WithWorkers(workers),
		sentiment.WithClock(clock),
	)
	tagger := themes.NewTagger(themes.DefaultThemes(), nil)

	svc := app.NewService(engine, runner, tagger, repo, nil, clock)

	augmented, batchReport, err := svc.ScoreReviews(ctx, cleaned)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	slog.InfoContext(ctx, "Batch scored",
		"batch_id", batchReport.ID,
		"scored", batchReport.Succeeded(),
		"failed", len(batchReport.Failures),
		"duration", batchReport.Duration,
	)
	for _, failure := range batchReport.Failures {
		slog.WarnContext(ctx, "Review failed to score",
			"index", failure.Index, "reason", failure.Reason, "snippet", failure.Snippet)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := csvfile.WriteReviews(out, augmented); err != nil {
		return fmt.Errorf("failed to write reviews: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	slog.InfoContext(ctx, "Pipeline run complete", "input", inPath, "output", outPath, "rows", len(augmented))
	return nil
}
