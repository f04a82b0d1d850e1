package github

import (
	"context"
	"log/slog"
	"time"

	"github.com/inovacc/trendr/internal/encoding"
	"github.com/inovacc/trendr/internal/model"
	"github.com/inovacc/trendr/internal/store"
)

// CacheKey is the medium key holding the last successful fetch.
const CacheKey = "trendingCache"

type cacheEntry struct {
	FetchedAt    time.Time          `json:"fetched_at"`
	Repositories []model.Repository `json:"repositories"`
}

// CachedSource serves the last successful fetch for up to ttl. An expired
// entry is never used as a fallback when the live fetch fails.
type CachedSource struct {
	source Source
	medium store.Medium
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewCachedSource wraps source. A ttl of zero disables caching.
func NewCachedSource(source Source, m store.Medium, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedSource{source: source, medium: m, ttl: ttl, now: time.Now, logger: logger}
}

func (c *CachedSource) Trending(ctx context.Context) ([]model.Repository, error) {
	if c.ttl <= 0 {
		return c.source.Trending(ctx)
	}

	if repos, ok := c.lookup(); ok {
		return repos, nil
	}

	repos, err := c.source.Trending(ctx)
	if err != nil {
		return nil, err
	}

	c.store(repos)

	return repos, nil
}

// Invalidate drops the cached entry so the next call goes to the source.
func (c *CachedSource) Invalidate() error {
	return c.medium.Remove(CacheKey)
}

func (c *CachedSource) lookup() ([]model.Repository, bool) {
	raw, ok, err := c.medium.Get(CacheKey)
	if err != nil {
		c.logger.Warn("failed to read trending cache", slog.String("error", err.Error()))
		return nil, false
	}

	if !ok {
		return nil, false
	}

	entry, err := encoding.Decode[cacheEntry](raw)
	if err != nil {
		c.logger.Warn("trending cache is corrupted", slog.String("error", err.Error()))
		return nil, false
	}

	age := c.now().Sub(entry.FetchedAt)
	if age < 0 || age >= c.ttl {
		return nil, false
	}

	c.logger.Debug("serving trending repositories from cache",
		slog.Duration("age", age),
		slog.Int("count", len(entry.Repositories)))

	if entry.Repositories == nil {
		return []model.Repository{}, true
	}

	return entry.Repositories, true
}

func (c *CachedSource) store(repos []model.Repository) {
	value, err := encoding.Encode(cacheEntry{FetchedAt: c.now().UTC(), Repositories: repos})
	if err != nil {
		c.logger.Warn("failed to encode trending cache", slog.String("error", err.Error()))
		return
	}

	if err := c.medium.Set(CacheKey, value); err != nil {
		c.logger.Warn("failed to write trending cache", slog.String("error", err.Error()))
	}
}
