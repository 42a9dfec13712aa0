package confirmation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"signup/pkg/email"
	"signup/pkg/platform/sentinel"
)

const keyPrefix = "signup:confirm:"

// RedisStore keeps pending confirmation codes in Redis so every instance
// can verify a code issued by another. Expiry is left to Redis key TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed code store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, address, code string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := s.client.Set(ctx, key(address), code, ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, address string) (string, error) {
	code, err := s.client.Get(ctx, key(address)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("confirmation code: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load confirmation code: %w", err)
	}
	return code, nil
}

func (s *RedisStore) Delete(ctx context.Context, address string) error {
	if err := s.client.Del(ctx, key(address)).Err(); err != nil {
		return fmt.Errorf("delete confirmation code: %w", err)
	}
	return nil
}

func key(address string) string {
	return keyPrefix + email.Normalize(address)
}
