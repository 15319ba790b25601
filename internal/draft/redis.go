package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "swolelog-draft||"

// RedisStore shares drafts between service instances.
type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redisClient: redisClient, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) (workout.Draft, error) {
	b, err := s.redisClient.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return workout.Draft{}, ErrNotFound
		}
		return workout.Draft{}, fmt.Errorf("redis get: %w", err)
	}
	return decode(b)
}

func (s *RedisStore) Put(ctx context.Context, id string, d workout.Draft) error {
	b, err := encode(d)
	if err != nil {
		return err
	}
	if err := s.redisClient.Set(ctx, key(id), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.redisClient.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
