// Package storage caches raw upstream content between analysis runs so
// repeated requests don't burn API quota. The cache is advisory and
// TTL-bounded; a force refresh bypasses reads but still records the fetch.
package storage

import (
	"context"
	"time"

	"flavorscout/internal/model"
)

// Snapshot is the cached output of one content source fetch.
type Snapshot struct {
	Items     []model.ContentItem    `json:"items"`
	Excerpts  []model.ContentExcerpt `json:"excerpts"`
	FetchedAt time.Time              `json:"fetched_at"`
}

// Age returns how old the snapshot is at the given instant.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// FetchCache stores per-source snapshots and counts real upstream fetches.
type FetchCache interface {
	// GetSnapshot returns the cached snapshot for a source, or nil when
	// absent or expired.
	GetSnapshot(ctx context.Context, source string) (*Snapshot, error)
	// PutSnapshot stores a snapshot for a source.
	PutSnapshot(ctx context.Context, source string, snap Snapshot) error
	// IncrFetches bumps the upstream fetch counter and returns the new total.
	IncrFetches(ctx context.Context) (int64, error)
	// Fetches returns the upstream fetch counter.
	Fetches(ctx context.Context) (int64, error)
}
