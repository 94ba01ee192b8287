package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/monsite/console-api/internal/core/domain"
)

// LockoutStore persists brute-force lockout records in Redis.
// Key format: lockout:<form>:<email>. The TTL matches the lockout window, so
// records expire naturally; the guard additionally checks the timestamp
// lazily, which keeps behaviour identical on stores without TTL semantics.
type LockoutStore struct {
	client *redis.Client
}

func NewLockoutStore(client *redis.Client) *LockoutStore {
	return &LockoutStore{client: client}
}

func (s *LockoutStore) Get(ctx context.Context, form, key string) (*domain.LockoutRecord, error) {
	raw, err := s.client.Get(ctx, s.key(form, key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lockout get: %w", err)
	}

	var rec domain.LockoutRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		// A corrupt record must not lock anyone out forever.
		_ = s.client.Del(ctx, s.key(form, key)).Err()
		return nil, nil
	}
	return &rec, nil
}

func (s *LockoutStore) Put(ctx context.Context, form, key string, record domain.LockoutRecord, ttl time.Duration) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("lockout marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(form, key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("lockout put: %w", err)
	}
	return nil
}

func (s *LockoutStore) Delete(ctx context.Context, form, key string) error {
	if err := s.client.Del(ctx, s.key(form, key)).Err(); err != nil {
		return fmt.Errorf("lockout delete: %w", err)
	}
	return nil
}

func (s *LockoutStore) key(form, key string) string {
	return fmt.Sprintf("lockout:%s:%s", form, key)
}
