package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"reviewpulse/internal/adapter/httpserver"
	"reviewpulse/internal/adapter/metrics"
	"reviewpulse/internal/adapter/postgres"
	"reviewpulse/internal/adapter/redis"
	"reviewpulse/internal/app"
	"reviewpulse/internal/platform/config"
	"reviewpulse/internal/platform/logging"
	"reviewpulse/internal/sentiment"
	"reviewpulse/internal/themes"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(cfg *config.Config) *goredis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func setupScorers(cfg *config.Config, cache *redis.ScoreCache, m *metrics.ScoringMetrics, clock clockwork.Clock) (bert, vader, textblob sentiment.Scorer) {
	vaderScorer, err := sentiment.NewVaderScorer()
	if err != nil {
		slog.Error("Failed to load vader lexicon", "error", err)
		os.Exit(1)
	}

	patternScorer, err := sentiment.NewPatternScorer()
	if err != nil {
		slog.Error("Failed to load polarity lexicon", "error", err)
		os.Exit(1)
	}

	bertScorer := sentiment.NewBertScorer(cfg.InferenceURL,
		sentiment.WithHTTPClient(&http.Client{Timeout: cfg.InferenceTimeout}),
		sentiment.WithRateLimit(cfg.InferenceRPS),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := bertScorer.Warmup(ctx); err != nil {
		slog.Error("Inference endpoint warmup failed", "error", err, "endpoint", cfg.InferenceURL)
		os.Exit(1)
	}

	bert = sentiment.NewTimedScorer(sentiment.NewCachedScorer(bertScorer, cache, m), m, clock)
	vader = sentiment.NewTimedScorer(sentiment.NewCachedScorer(vaderScorer, cache, m), m, clock)
	textblob = sentiment.NewTimedScorer(sentiment.NewCachedScorer(patternScorer, cache, m), m, clock)
	return bert, vader, textblob
}

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(cfg)
	defer func() { _ = redisClient.Close() }()

	registry := metrics.NewRegistry()
	scoringMetrics := metrics.NewScoringMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	scoreCache := redis.NewScoreCache(redisClient, cfg.ScoreCacheTTL)
	bert, vader, textblob := setupScorers(cfg, scoreCache, scoringMetrics, clock)

	engine := sentiment.NewEngine(bert, vader, textblob)
	runner := sentiment.NewRunner(engine,
		sentiment.WithWorkers(cfg.ScoringWorkers),
		sentiment.WithClock(clock),
	)

	tagger := themes.NewTagger(themes.DefaultThemes(), nil)
	reviewRepo := postgres.NewReviewRepo(pool)

	appSvc := app.NewService(engine, runner, tagger, reviewRepo, scoringMetrics, clock)

	healthChecks := []httpserver.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	}

	srv := httpserver.NewServer(cfg, appSvc, metrics.Handler(registry), httpMetrics, healthChecks)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
