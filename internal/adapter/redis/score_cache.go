package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultScoreTTL = 24 * time.Hour

// ScoreCache stores scorer outputs keyed by scorer name and text hash.
// Values expire so lexicon or model updates eventually flow through.
type ScoreCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewScoreCache creates a score cache with the given TTL (0 means the
// 24h default).
func NewScoreCache(rdb *goredis.Client, ttl time.Duration) *ScoreCache {
	if ttl <= 0 {
		ttl = defaultScoreTTL
	}
	return &ScoreCache{rdb: rdb, ttl: ttl}
}

// GetScore looks up a cached score, returning (0, false, nil) on a miss.
func (c *ScoreCache) GetScore(ctx context.Context, scorer, key string) (float64, bool, error) {
	raw, err := c.rdb.Get(ctx, scoreKey(scorer, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("score cache get failed: %w", err)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Corrupt entry; treat as a miss so it gets overwritten.
		return 0, false, nil
	}
	return value, true, nil
}

// SetScore stores a score with the cache TTL.
func (c *ScoreCache) SetScore(ctx context.Context, scorer, key string, value float64) error {
	raw := strconv.FormatFloat(value, 'g', -1, 64)
	if err := c.rdb.Set(ctx, scoreKey(scorer, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("score cache set failed: %w", err)
	}
	return nil
}

func scoreKey(scorer, key string) string {
	return "score:" + scorer + ":" + key
}
