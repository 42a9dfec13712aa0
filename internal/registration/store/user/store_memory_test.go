package user

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"signup/internal/registration/models"
	"signup/pkg/platform/sentinel"
)

type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
}

func newUser(username, address string) *models.User {
	return &models.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          address,
		PasswordDigest: "digest",
		CreatedAt:      time.Now(),
	}
}

func (s *InMemoryUserStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	u := newUser("jane", "jane.doe@example.com")

	require.NoError(s.T(), s.store.Create(ctx, u))

	exists, err := s.store.ExistsByUsername(ctx, "JANE")
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)

	found, err := s.store.FindByUsername(ctx, "jane")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u, found)
}

func (s *InMemoryUserStoreSuite) TestCreateConflicts() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.Create(ctx, newUser("jane", "jane@example.com")))

	err := s.store.Create(ctx, newUser("Jane", "other@example.com"))
	assert.ErrorIs(s.T(), err, sentinel.ErrConflict)

	err = s.store.Create(ctx, newUser("john", "JANE@example.com"))
	assert.ErrorIs(s.T(), err, sentinel.ErrConflict)
}

func (s *InMemoryUserStoreSuite) TestNotFound() {
	ctx := context.Background()

	exists, err := s.store.ExistsByUsername(ctx, "missing")
	require.NoError(s.T(), err)
	assert.False(s.T(), exists)

	_, err = s.store.FindByUsername(ctx, "missing")
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)

	err = s.store.MarkConfirmed(ctx, "missing@example.com", time.Now())
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryUserStoreSuite) TestMarkConfirmed() {
	ctx := context.Background()
	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	require.NoError(s.T(), s.store.Create(ctx, newUser("jane", "Jane@Example.com")))

	require.NoError(s.T(), s.store.MarkConfirmed(ctx, "jane@example.com", at))

	found, err := s.store.FindByUsername(ctx, "jane")
	require.NoError(s.T(), err)
	assert.True(s.T(), found.Confirmed)
	require.NotNil(s.T(), found.ConfirmedAt)
	assert.Equal(s.T(), at, *found.ConfirmedAt)
}

func (s *InMemoryUserStoreSuite) TestConcurrentCreateSameUsername() {
	ctx := context.Background()
	var wins atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := newUser("racer", uuid.NewString()+"@example.com")
			if err := s.store.Create(ctx, u); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(s.T(), int32(1), wins.Load())
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}
