package models

// Registration is the per-attempt record handed to the workflow. Callers fill
// the submitted fields; the flags and ValidationErrors are written only by
// validation (IsEmailValid, IsPasswordValid, ValidationErrors) and by the
// workflow (IsExistingUser, IsSaved). A record is used for one attempt and
// then discarded.
type Registration struct {
	Username             string
	Password             string
	PasswordConfirmation string
	Email                string
	EmailConfirmation    string

	IsSaved         bool
	IsEmailValid    bool
	IsPasswordValid bool
	IsExistingUser  bool

	ValidationErrors []string
}

// PasswordCheckResult reports the outcome of the complexity check. Message is
// empty when the password is valid.
type PasswordCheckResult struct {
	IsValid bool
	Message string
}

// SaveResult is returned by the persistence collaborator.
type SaveResult struct {
	IsSuccess bool
	Error     string
}

// EmailResult is returned by the notification collaborator.
type EmailResult struct {
	IsSuccess bool
	Error     string
}
