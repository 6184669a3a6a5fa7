package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements FetchCache in process memory. Used when redis is
// not configured; contents are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	snaps   map[string]Snapshot
	fetches int64
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MemoryStore{ttl: ttl, snaps: make(map[string]Snapshot), now: time.Now}
}

func (s *MemoryStore) GetSnapshot(_ context.Context, source string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[source]
	if !ok {
		return nil, nil
	}
	if snap.Age(s.now()) > s.ttl {
		delete(s.snaps, source)
		return nil, nil
	}
	out := snap
	return &out, nil
}

func (s *MemoryStore) PutSnapshot(_ context.Context, source string, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[source] = snap
	return nil
}

func (s *MemoryStore) IncrFetches(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.fetches, nil
}

func (s *MemoryStore) Fetches(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches, nil
}
