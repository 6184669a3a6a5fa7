// Package source defines the content-source abstraction consumed by the
// orchestrator and the cache-aware wrapper around concrete clients.
package source

import (
	"context"
	"log/slog"
	"time"

	"flavorscout/internal/model"
	"flavorscout/internal/storage"
)

// Result is one source's contribution to an analysis run.
type Result struct {
	Items      []model.ContentItem
	Excerpts   []model.ContentExcerpt
	FromCache  bool
	AgeSeconds int
}

// Source produces content for the analysis pipeline. forceRefresh bypasses
// any cached read.
type Source interface {
	Name() string
	Fetch(ctx context.Context, forceRefresh bool) (Result, error)
}

// Fetcher is a raw upstream client without caching.
type Fetcher interface {
	Name() string
	FetchContent(ctx context.Context) ([]model.ContentItem, []model.ContentExcerpt, error)
}

// Cached wraps a Fetcher with the fetch cache. Cache failures are logged and
// degrade to a live fetch; they never fail the pipeline on their own.
type Cached struct {
	Fetcher Fetcher
	Cache   storage.FetchCache
	now     func() time.Time
}

func NewCached(f Fetcher, c storage.FetchCache) *Cached {
	return &Cached{Fetcher: f, Cache: c, now: time.Now}
}

func (c *Cached) Name() string { return c.Fetcher.Name() }

func (c *Cached) Fetch(ctx context.Context, forceRefresh bool) (Result, error) {
	if !forceRefresh {
		snap, err := c.Cache.GetSnapshot(ctx, c.Name())
		if err != nil {
			slog.Warn("source: fetch cache read failed", "source", c.Name(), "error", err)
		} else if snap != nil {
			return Result{
				Items:      snap.Items,
				Excerpts:   snap.Excerpts,
				FromCache:  true,
				AgeSeconds: int(snap.Age(c.now()).Seconds()),
			}, nil
		}
	}

	items, excerpts, err := c.Fetcher.FetchContent(ctx)
	if err != nil {
		return Result{}, err
	}
	if _, err := c.Cache.IncrFetches(ctx); err != nil {
		slog.Warn("source: fetch counter failed", "source", c.Name(), "error", err)
	}
	snap := storage.Snapshot{Items: items, Excerpts: excerpts, FetchedAt: c.now()}
	if err := c.Cache.PutSnapshot(ctx, c.Name(), snap); err != nil {
		slog.Warn("source: fetch cache write failed", "source", c.Name(), "error", err)
	}
	return Result{Items: items, Excerpts: excerpts}, nil
}
