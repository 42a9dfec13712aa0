package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"signup/internal/registration/models"
	"signup/pkg/platform/sentinel"
	"signup/pkg/requestcontext"
)

// UserStore is the subset of the user stores the workflow persistence needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserStorePersistence exposes a user store as the workflow's Persistence
// collaborator, turning store errors into SaveResults.
type UserStorePersistence struct {
	users UserStore
}

func NewUserStorePersistence(users UserStore) *UserStorePersistence {
	return &UserStorePersistence{users: users}
}

func (p *UserStorePersistence) UserExists(ctx context.Context, username string) (bool, error) {
	return p.users.ExistsByUsername(ctx, username)
}

// Save creates the user. A unique-constraint conflict from a concurrent
// registration is reported as a failed save like any other store error.
func (p *UserStorePersistence) Save(ctx context.Context, username, email, passwordDigest string) models.SaveResult {
	user := &models.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		PasswordDigest: passwordDigest,
		CreatedAt:      requestcontext.Now(ctx),
	}
	if err := p.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.SaveResult{IsSuccess: false, Error: "username or email already registered: " + err.Error()}
		}
		return models.SaveResult{IsSuccess: false, Error: err.Error()}
	}
	return models.SaveResult{IsSuccess: true}
}
