// internal/api/handler/registration.go
package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"user-registration/internal/api/types"
	"user-registration/internal/api/views"
	"user-registration/internal/domain"
	"user-registration/internal/service"
)

// DefaultTimeout bounds the handling of a single request.
const DefaultTimeout = 30 * time.Second

// Paths served by RegistrationHandler.
const (
	RegisterPath = "/register"
	SuccessPath  = "/register/success"
)

// maxFormBytes caps the size of a submitted form body.
const maxFormBytes = 64 << 10

const genericFailure = "Registration failed. Please try again later."

// RegistrationHandler handles HTTP requests for the sign-up page.
type RegistrationHandler struct {
	service service.RegistrationService
	views   *views.Renderer
	logger  *slog.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(svc service.RegistrationService, renderer *views.Renderer, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service: svc,
		views:   renderer,
		logger:  logger,
	}
}

// Show renders the empty registration form.
// GET /register
func (h *RegistrationHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, types.RegisterPage{})
}

// Submit processes a registration form.
// POST /register
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("Failed to parse registration form", "error", err)
		h.renderForm(w, http.StatusBadRequest, types.RegisterPage{GeneralError: "The submitted form could not be read."})
		return
	}

	form := domain.RegistrationForm{
		Username: r.PostFormValue(domain.FieldUsername),
		Email:    r.PostFormValue(domain.FieldEmail),
		Password: r.PostFormValue(domain.FieldPassword),
		FullName: r.PostFormValue(domain.FieldFullName),
		Phone:    r.PostFormValue(domain.FieldPhone),
	}

	user, err := h.service.Register(r.Context(), form)
	if err != nil {
		h.respondWithError(w, form, err)
		return
	}

	h.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, SuccessPath, http.StatusSeeOther)
}

// Success renders the confirmation page.
// GET /register/success
func (h *RegistrationHandler) Success(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.views.Success(&buf); err != nil {
		h.logger.Error("Failed to render success page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.write(w, http.StatusOK, &buf)
}

// respondWithError re-renders the form with the submitted values (password
// excluded) and either the per-field messages or a generic failure notice.
func (h *RegistrationHandler) respondWithError(w http.ResponseWriter, form domain.RegistrationForm, err error) {
	page := types.RegisterPage{Values: form.Normalize().Echo()}
	statusCode := http.StatusInternalServerError

	var fieldErrs domain.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		page.Errors = fieldErrs
		statusCode = http.StatusUnprocessableEntity
		if isConflict(fieldErrs) {
			statusCode = http.StatusConflict
		}
	default:
		h.logger.Error("Registration failed", "error", err)
		page.GeneralError = genericFailure
	}

	h.renderForm(w, statusCode, page)
}

func (h *RegistrationHandler) renderForm(w http.ResponseWriter, code int, page types.RegisterPage) {
	var buf bytes.Buffer
	if err := h.views.Register(&buf, page); err != nil {
		h.logger.Error("Failed to render registration page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.write(w, code, &buf)
}

func (h *RegistrationHandler) write(w http.ResponseWriter, code int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// isConflict reports whether errs only describes values already registered.
func isConflict(errs domain.FieldErrors) bool {
	for _, msg := range errs {
		if msg != domain.MsgUsernameTaken && msg != domain.MsgEmailTaken {
			return false
		}
	}
	return len(errs) > 0
}
