package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements FetchCache on redis with TTL-bounded snapshots.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func snapshotKey(source string) string {
	return fmt.Sprintf("flavorscout:fetch:%s", source)
}

const fetchCountKey = "flavorscout:fetch_count"

func (s *RedisStore) GetSnapshot(ctx context.Context, source string) (*Snapshot, error) {
	b, err := s.rdb.Get(ctx, snapshotKey(source)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *RedisStore) PutSnapshot(ctx context.Context, source string, snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, snapshotKey(source), b, s.ttl).Err()
}

func (s *RedisStore) IncrFetches(ctx context.Context) (int64, error) {
	return s.rdb.Incr(ctx, fetchCountKey).Result()
}

func (s *RedisStore) Fetches(ctx context.Context) (int64, error) {
	n, err := s.rdb.Get(ctx, fetchCountKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
