package opstatus

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey holds the flag when no key is configured.
const DefaultRedisKey = "surety:operational"

// RedisStore shares the flag between replicas. A missing key means enabled.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (bool, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("get operational status: %w", err)
	}
	return v == "1", nil
}

func (s *RedisStore) Save(ctx context.Context, operational bool) error {
	v := "0"
	if operational {
		v = "1"
	}
	if err := s.client.Set(ctx, s.key, v, 0).Err(); err != nil {
		return fmt.Errorf("set operational status: %w", err)
	}
	return nil
}
