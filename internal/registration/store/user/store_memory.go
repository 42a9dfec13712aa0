package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"signup/internal/registration/models"
	"signup/pkg/email"
	"signup/pkg/platform/sentinel"
)

// Error Contract:
// - Return sentinel.ErrNotFound when the requested user does not exist
// - Return sentinel.ErrConflict when a username or email is already taken
// - Return wrapped errors with context for infrastructure failures

// InMemoryUserStore keeps users in memory. Create checks uniqueness under the
// write lock, so concurrent registrations for one username cannot both win.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

// New constructs an empty in-memory user store.
func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return fmt.Errorf("username %q taken: %w", user.Username, sentinel.ErrConflict)
		}
		if email.Normalize(existing.Email) == email.Normalize(user.Email) {
			return fmt.Errorf("email taken: %w", sentinel.ErrConflict)
		}
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *InMemoryUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			found := *u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryUserStore) MarkConfirmed(_ context.Context, address string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := email.Normalize(address)
	for _, u := range s.users {
		if email.Normalize(u.Email) == key {
			u.Confirmed = true
			confirmedAt := at
			u.ConfirmedAt = &confirmedAt
			return nil
		}
	}
	return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}
