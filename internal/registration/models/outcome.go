package models

import "strings"

// OutcomeKind tags how a registration attempt ended.
type OutcomeKind string

const (
	OutcomeValidationFailed  OutcomeKind = "validation_failed"
	OutcomeConflict          OutcomeKind = "conflict"
	OutcomePersistenceFailed OutcomeKind = "persistence_failed"
	OutcomeSuccess           OutcomeKind = "success"
)

func (k OutcomeKind) String() string {
	return string(k)
}

// User-facing status strings rendered by Outcome.Status.
const (
	StatusUsernameTaken      = "Username already taken"
	StatusRegistrationFailed = "Registration failed - please try again"
	StatusRegistered         = "Registration successful - please check your email for confirmation"
)

// Outcome is the structured result of a workflow run. The literal status
// string is produced only at the boundary via Status.
type Outcome struct {
	Kind OutcomeKind
	// Errors holds the validation messages in rule order when Kind is
	// OutcomeValidationFailed.
	Errors []string
	// ConfirmationCode is set once the user has been persisted.
	ConfirmationCode string
	// NotificationFailed records a swallowed confirmation email failure.
	NotificationFailed bool
}

// Status renders the user-facing status string for the outcome.
func (o Outcome) Status() string {
	switch o.Kind {
	case OutcomeValidationFailed:
		return strings.Join(o.Errors, ", ")
	case OutcomeConflict:
		return StatusUsernameTaken
	case OutcomePersistenceFailed:
		return StatusRegistrationFailed
	case OutcomeSuccess:
		return StatusRegistered
	default:
		return StatusRegistrationFailed
	}
}

// Succeeded reports whether the user was registered.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}
