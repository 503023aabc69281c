package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camaraaberta/ceap/internal/upload/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists statuses in redis so they survive restarts and are
// shared between replicas. Entries expire after the configured TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func statusKey(id string) string { return fmt.Sprintf("upload:%s:status", id) }

func (s *RedisStore) Put(ctx context.Context, status domain.Status) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statusKey(status.ID), payload, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Status, error) {
	payload, err := s.client.Get(ctx, statusKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var status domain.Status
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
