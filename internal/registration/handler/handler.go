package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"signup/internal/registration/models"
	jsonResponse "signup/internal/transport/http/json"
	httpError "signup/internal/transport/http/shared"
	dErrors "signup/pkg/domain-errors"
	"signup/pkg/requestcontext"
	"signup/pkg/validation"
)

// Service defines the registration operations exposed over HTTP.
type Service interface {
	Run(ctx context.Context, r *models.Registration) models.Outcome
	Confirm(ctx context.Context, email, code string) error
}

// Handler serves the registration endpoints.
type Handler struct {
	registration Service
	logger       *slog.Logger
}

func New(registration Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{registration: registration, logger: logger}
}

// Register registers the registration routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registrations", h.HandleRegister)
	r.Post("/registrations/confirm", h.HandleConfirm)
}

// RegisterRequest carries the raw registration form. Field rules are applied
// by the registration validator, not here, so every message is reported.
type RegisterRequest struct {
	Username             string `json:"username" validate:"max=256"`
	Password             string `json:"password" validate:"max=256"`
	PasswordConfirmation string `json:"password_confirmation" validate:"max=256"`
	Email                string `json:"email" validate:"max=320"`
	EmailConfirmation    string `json:"email_confirmation" validate:"max=320"`
}

type RegisterResponse struct {
	Status  string   `json:"status"`
	Outcome string   `json:"outcome"`
	Errors  []string `json:"errors,omitempty"`
}

type ConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,alphanum"`
}

type ConfirmResponse struct {
	Status string `json:"status"`
}

// HandleRegister implements POST /registrations.
//
// Input: { "username": "...", "password": "...", "password_confirmation": "...", "email": "...", "email_confirmation": "..." }
// Output: { "status": "Registration successful - please check your email for confirmation", "outcome": "success" }
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req RegisterRequest
	if err := jsonResponse.DecodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode registration request",
			"error", err,
			"request_id", requestID,
		)
		httpError.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid registration request",
			"error", err,
			"request_id", requestID,
		)
		httpError.WriteError(w, err)
		return
	}

	registration := &models.Registration{
		Username:             req.Username,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Email:                req.Email,
		EmailConfirmation:    req.EmailConfirmation,
	}
	outcome := h.registration.Run(ctx, registration)

	resp := RegisterResponse{
		Status:  outcome.Status(),
		Outcome: string(outcome.Kind),
	}
	if outcome.Kind == models.OutcomeValidationFailed {
		resp.Errors = outcome.Errors
	}
	jsonResponse.WriteJSON(w, statusFor(outcome.Kind), resp)
}

// HandleConfirm implements POST /registrations/confirm.
//
// Input: { "email": "user@example.com", "code": "AB12CD" }
// Output: { "status": "Email address confirmed" }
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req ConfirmRequest
	if err := jsonResponse.DecodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode confirm request",
			"error", err,
			"request_id", requestID,
		)
		httpError.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		httpError.WriteError(w, err)
		return
	}

	if err := h.registration.Confirm(ctx, req.Email, req.Code); err != nil {
		h.logger.WarnContext(ctx, "email confirmation failed",
			"error", err,
			"request_id", requestID,
		)
		httpError.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, ConfirmResponse{Status: "Email address confirmed"})
}

func statusFor(kind models.OutcomeKind) int {
	switch kind {
	case models.OutcomeSuccess:
		return http.StatusCreated
	case models.OutcomeValidationFailed:
		return http.StatusBadRequest
	case models.OutcomeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
