// Package cache holds the last successful analysis so it can be served when
// any pipeline stage fails.
package cache

import (
	"time"

	"flavorscout/internal/model"
)

// StaleCache is a process-wide single slot: the most recent Put wins and
// entries never expire. Staleness is surfaced as metadata, not enforced as
// a cutoff. Concurrent writers race to last-writer-wins.
type StaleCache struct {
	slot     *model.AnalysisResult
	storedAt time.Time
	now      func() time.Time
}

// New creates an empty cache using the real clock.
func New() *StaleCache {
	return &StaleCache{now: time.Now}
}

// NewWithClock creates a cache with an injected clock, for tests.
func NewWithClock(now func() time.Time) *StaleCache {
	return &StaleCache{now: now}
}

// Put unconditionally overwrites the slot with a copy of result.
func (c *StaleCache) Put(result model.AnalysisResult) {
	stored := result // copy; slices are shared, pipeline data is immutable
	c.slot = &stored
	c.storedAt = c.now()
}

// Get returns a copy of the stored value marked as a fallback for the given
// reason, or nil when the slot is empty. The age reflects the time since the
// last Put.
func (c *StaleCache) Get(reason string) *model.AnalysisResult {
	if c.slot == nil {
		return nil
	}
	out := *c.slot
	out.CacheInfo = model.CacheInfo{
		UsedCache:       true,
		CacheAgeSeconds: int(c.now().Sub(c.storedAt).Seconds()),
		TotalAPIFetches: c.slot.CacheInfo.TotalAPIFetches,
		IsFallback:      true,
		FallbackReason:  reason,
	}
	return &out
}
