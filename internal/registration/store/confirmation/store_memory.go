package confirmation

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"signup/pkg/email"
	"signup/pkg/platform/sentinel"
)

// DefaultTTL bounds how long a confirmation code stays valid.
const DefaultTTL = 24 * time.Hour

// InMemoryStore keeps pending confirmation codes in a TTL cache. Expired
// entries are reported as not found.
type InMemoryStore struct {
	cache *gocache.Cache
}

// NewInMemory constructs an in-memory code store whose janitor sweeps
// expired codes every cleanupInterval.
func NewInMemory(cleanupInterval time.Duration) *InMemoryStore {
	return &InMemoryStore{cache: gocache.New(DefaultTTL, cleanupInterval)}
}

func (s *InMemoryStore) Put(_ context.Context, address, code string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.cache.Set(email.Normalize(address), code, ttl)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, address string) (string, error) {
	v, ok := s.cache.Get(email.Normalize(address))
	if !ok {
		return "", fmt.Errorf("confirmation code: %w", sentinel.ErrNotFound)
	}
	code, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("confirmation code has unexpected type %T", v)
	}
	return code, nil
}

func (s *InMemoryStore) Delete(_ context.Context, address string) error {
	s.cache.Delete(email.Normalize(address))
	return nil
}
