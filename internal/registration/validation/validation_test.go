package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"signup/internal/registration/models"
)

func validRegistration() *models.Registration {
	return &models.Registration{
		Username:             "testuser123",
		Email:                "test@example.com",
		EmailConfirmation:    "test@example.com",
		Password:             "Password123!",
		PasswordConfirmation: "Password123!",
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	r := validRegistration()

	errs := Validate(r)

	assert.Empty(t, errs)
	assert.Empty(t, r.ValidationErrors)
	assert.True(t, r.IsEmailValid)
	assert.True(t, r.IsPasswordValid)
	assert.False(t, r.IsSaved)
	assert.False(t, r.IsExistingUser)
}

func TestValidate_Username(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     string
	}{
		{"empty", "", MsgUsernameRequired},
		{"whitespace only", "   \t", MsgUsernameRequired},
		{"two characters", "ab", MsgUsernameTooShort},
		{"padded two characters", " ab ", MsgUsernameTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			r.Username = tt.username

			errs := Validate(r)

			assert.Equal(t, []string{tt.want}, errs)
		})
	}

	t.Run("three characters accepted", func(t *testing.T) {
		r := validRegistration()
		r.Username = "abc"
		assert.Empty(t, Validate(r))
	})
}

func TestValidate_Email(t *testing.T) {
	t.Run("missing email and confirmation", func(t *testing.T) {
		r := validRegistration()
		r.Email = ""
		r.EmailConfirmation = " "

		errs := Validate(r)

		assert.Equal(t, []string{MsgEmailRequired, MsgEmailConfirmationRequired}, errs)
		assert.False(t, r.IsEmailValid)
	})

	t.Run("invalid format", func(t *testing.T) {
		r := validRegistration()
		r.Email = "invalid-email"
		r.EmailConfirmation = "invalid-email"

		errs := Validate(r)

		assert.Equal(t, []string{MsgEmailInvalid}, errs)
		assert.False(t, r.IsEmailValid)
	})

	t.Run("domain without dot", func(t *testing.T) {
		r := validRegistration()
		r.Email = "user@localhost"
		r.EmailConfirmation = "user@localhost"

		assert.Equal(t, []string{MsgEmailInvalid}, Validate(r))
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		r := validRegistration()
		r.EmailConfirmation = "other@example.com"

		errs := Validate(r)

		assert.Equal(t, []string{MsgEmailMismatch}, errs)
		assert.True(t, r.IsEmailValid)
	})

	t.Run("confirmation comparison is exact", func(t *testing.T) {
		r := validRegistration()
		r.EmailConfirmation = "Test@example.com"

		assert.Equal(t, []string{MsgEmailMismatch}, Validate(r))
	})
}

func TestValidate_Password(t *testing.T) {
	t.Run("missing password and confirmation", func(t *testing.T) {
		r := validRegistration()
		r.Password = ""
		r.PasswordConfirmation = ""

		errs := Validate(r)

		assert.Equal(t, []string{MsgPasswordRequired, MsgPasswordConfirmationRequired}, errs)
		assert.False(t, r.IsPasswordValid)
	})

	t.Run("too short", func(t *testing.T) {
		r := validRegistration()
		r.Password = "Pass1!"
		r.PasswordConfirmation = "Pass1!"

		assert.Equal(t, []string{MsgPasswordTooShort}, Validate(r))
		assert.False(t, r.IsPasswordValid)
	})

	t.Run("missing character classes", func(t *testing.T) {
		r := validRegistration()
		r.Password = "password123"
		r.PasswordConfirmation = "password123"

		assert.Equal(t, []string{MsgPasswordComplexity}, Validate(r))
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		r := validRegistration()
		r.PasswordConfirmation = "Password123?"

		errs := Validate(r)

		assert.Equal(t, []string{MsgPasswordMismatch}, errs)
		assert.True(t, r.IsPasswordValid)
	})
}

func TestValidate_AllFieldsCheckedInOrder(t *testing.T) {
	r := &models.Registration{
		Username:             "",
		Email:                "invalid-email",
		EmailConfirmation:    "different-email",
		Password:             "weak",
		PasswordConfirmation: "different",
	}

	errs := Validate(r)

	assert.Equal(t, []string{
		MsgUsernameRequired,
		MsgEmailInvalid,
		MsgEmailMismatch,
		MsgPasswordTooShort,
		MsgPasswordMismatch,
	}, errs)
	assert.Equal(t, errs, r.ValidationErrors)
}

func TestValidate_EmptyRecord(t *testing.T) {
	r := &models.Registration{}

	errs := Validate(r)

	assert.Equal(t, []string{
		MsgUsernameRequired,
		MsgEmailRequired,
		MsgEmailConfirmationRequired,
		MsgPasswordRequired,
		MsgPasswordConfirmationRequired,
	}, errs)
}

func TestValidate_RecomputesInsteadOfAccumulating(t *testing.T) {
	r := validRegistration()
	r.Username = ""
	require.Len(t, Validate(r), 1)

	r.Username = "fixed-user"
	assert.Empty(t, Validate(r))
	assert.Empty(t, r.ValidationErrors)
}

func TestValidate_ResetsFlagsOnRevalidation(t *testing.T) {
	r := validRegistration()
	require.Empty(t, Validate(r))
	require.True(t, r.IsEmailValid)

	r.Email = ""
	Validate(r)

	assert.False(t, r.IsEmailValid)
}

func TestValidate_Properties(t *testing.T) {
	field := rapid.OneOf(
		rapid.Just(""),
		rapid.Just("   "),
		rapid.Just("ab"),
		rapid.Just("test@example.com"),
		rapid.Just("Password123!"),
		rapid.String(),
	)

	rapid.Check(t, func(rt *rapid.T) {
		r := &models.Registration{
			Username:             field.Draw(rt, "username"),
			Email:                field.Draw(rt, "email"),
			EmailConfirmation:    field.Draw(rt, "emailConfirmation"),
			Password:             field.Draw(rt, "password"),
			PasswordConfirmation: field.Draw(rt, "passwordConfirmation"),
		}

		first := Validate(r)
		emailValid, passwordValid := r.IsEmailValid, r.IsPasswordValid
		second := Validate(r)

		// idempotent
		assert.Equal(rt, first, second)
		assert.Equal(rt, emailValid, r.IsEmailValid)
		assert.Equal(rt, passwordValid, r.IsPasswordValid)

		// no errors implies both flags set
		if len(second) == 0 {
			assert.True(rt, r.IsEmailValid)
			assert.True(rt, r.IsPasswordValid)
		}
		// at most one message per field
		assert.LessOrEqual(rt, len(second), 5)
	})
}
