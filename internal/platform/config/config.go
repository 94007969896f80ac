package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds all environment-provided settings for the service binary.
type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// InferenceURL is the SST-2 transformer inference endpoint the bert
	// scorer calls. Unreachable at startup is fatal.
	InferenceURL     string        `env:"INFERENCE_URL"`
	InferenceTimeout time.Duration `env:"INFERENCE_TIMEOUT" default:"10s"`
	// InferenceRPS caps outbound requests to the inference endpoint.
	InferenceRPS float64 `env:"INFERENCE_RPS" default:"20"`

	// ScoringWorkers bounds batch scoring parallelism.
	ScoringWorkers int `env:"SCORING_WORKERS" default:"4"`
	// ScoreCacheTTL is how long scorer outputs stay cached in Redis.
	ScoreCacheTTL time.Duration `env:"SCORE_CACHE_TTL" default:"24h"`

	// MaxBatchSize rejects oversized batch submissions at the API boundary.
	MaxBatchSize int `env:"MAX_BATCH_SIZE" default:"5000"`
}

// Load reads configuration from the environment, with a best-effort .env
// bootstrap for development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL":  cfg.DatabaseURL,
		"REDIS_URL":     cfg.RedisURL,
		"INFERENCE_URL": cfg.InferenceURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.ScoringWorkers < 1 {
		return fmt.Errorf("SCORING_WORKERS must be at least 1, got %d", cfg.ScoringWorkers)
	}
	if cfg.InferenceRPS <= 0 {
		return fmt.Errorf("INFERENCE_RPS must be positive, got %v", cfg.InferenceRPS)
	}
	if cfg.MaxBatchSize < 1 {
		return fmt.Errorf("MAX_BATCH_SIZE must be at least 1, got %d", cfg.MaxBatchSize)
	}

	return nil
}
