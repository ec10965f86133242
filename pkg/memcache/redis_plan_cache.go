package mem

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const planKeyPrefix = "tripwise:plan:"

type RedisPlans struct {
	client redis.Cmdable
}

func NewRedisPlans(client redis.Cmdable) *RedisPlans {
	return &RedisPlans{client: client}
}

func (s *RedisPlans) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, planKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *RedisPlans) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, planKeyPrefix+key, value, ttl).Err()
}
