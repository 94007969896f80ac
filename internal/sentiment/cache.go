package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// CacheStore is the subset of cache operations the decorator needs.
// Implementations must be safe for concurrent use.
type CacheStore interface {
	GetScore(ctx context.Context, scorer, key string) (float64, bool, error)
	SetScore(ctx context.Context, scorer, key string, value float64) error
}

// CacheObserver receives cache hit/miss notifications for metrics.
type CacheObserver interface {
	CacheHit(scorer string)
	CacheMiss(scorer string)
}

// CachedScorer decorates a scorer with a content-addressed score cache.
// Identical texts resolve to one key, and singleflight collapses concurrent
// misses for the same text into a single upstream call. Cache failures are
// logged and degrade to a direct call; the cache is never load-bearing.
type CachedScorer struct {
	inner    Scorer
	store    CacheStore
	observer CacheObserver
	group    singleflight.Group
}

// NewCachedScorer wraps inner with the given cache store. observer may be nil.
func NewCachedScorer(inner Scorer, store CacheStore, observer CacheObserver) *CachedScorer {
	return &CachedScorer{inner: inner, store: store, observer: observer}
}

func (s *CachedScorer) Name() string { return s.inner.Name() }

func (s *CachedScorer) Score(ctx context.Context, text string) (float64, error) {
	key := cacheKey(text)

	if value, ok, err := s.store.GetScore(ctx, s.Name(), key); err != nil {
		slog.Warn("Score cache read failed, scoring directly", "scorer", s.Name(), "error", err)
	} else if ok {
		if s.observer != nil {
			s.observer.CacheHit(s.Name())
		}
		return value, nil
	}

	if s.observer != nil {
		s.observer.CacheMiss(s.Name())
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		value, err := s.inner.Score(ctx, text)
		if err != nil {
			return 0.0, err
		}
		if err := s.store.SetScore(ctx, s.Name(), key, value); err != nil {
			slog.Warn("Score cache write failed", "scorer", s.Name(), "error", err)
		}
		return value, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(float64), nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
