// Package validation holds the registration field rules.
//
// Fields are checked in a fixed order (username, email, email confirmation,
// password, password confirmation). Every field is checked; only the
// sub-checks of a single field short-circuit.
package validation

import (
	"strings"
	"unicode/utf8"

	"signup/internal/registration/models"
	"signup/pkg/email"
)

const MinUsernameLength = 3

const (
	MsgUsernameRequired             = "Username is required"
	MsgUsernameTooShort             = "Username must be at least 3 characters long"
	MsgEmailRequired                = "Email address is required"
	MsgEmailInvalid                 = "Invalid email format"
	MsgEmailConfirmationRequired    = "Email address confirmation is required"
	MsgEmailMismatch                = "Email addresses do not match"
	MsgPasswordRequired             = "Password is required"
	MsgPasswordConfirmationRequired = "Password confirmation is required"
	MsgPasswordMismatch             = "Passwords do not match"
)

// Validate checks r, overwrites r.ValidationErrors and sets r.IsEmailValid and
// r.IsPasswordValid. It returns the error messages in rule order; an empty
// result means the record may proceed through the workflow. Calling Validate
// again on an unmodified record yields the same result.
func Validate(r *models.Registration) []string {
	errs := make([]string, 0)
	r.IsEmailValid = false
	r.IsPasswordValid = false

	username := strings.TrimSpace(r.Username)
	switch {
	case username == "":
		errs = append(errs, MsgUsernameRequired)
	case utf8.RuneCountInString(username) < MinUsernameLength:
		errs = append(errs, MsgUsernameTooShort)
	}

	if isBlank(r.Email) {
		errs = append(errs, MsgEmailRequired)
	} else {
		r.IsEmailValid = email.IsValidFormat(r.Email)
		if !r.IsEmailValid {
			errs = append(errs, MsgEmailInvalid)
		}
	}

	switch {
	case isBlank(r.EmailConfirmation):
		errs = append(errs, MsgEmailConfirmationRequired)
	case r.Email != r.EmailConfirmation:
		errs = append(errs, MsgEmailMismatch)
	}

	if isBlank(r.Password) {
		errs = append(errs, MsgPasswordRequired)
	} else {
		res := CheckPasswordComplexity(r.Password)
		r.IsPasswordValid = res.IsValid
		if !res.IsValid {
			errs = append(errs, res.Message)
		}
	}

	switch {
	case isBlank(r.PasswordConfirmation):
		errs = append(errs, MsgPasswordConfirmationRequired)
	case r.Password != r.PasswordConfirmation:
		errs = append(errs, MsgPasswordMismatch)
	}

	r.ValidationErrors = errs
	return errs
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
