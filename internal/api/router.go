// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"user-registration/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(registrationHandler *handler.RegistrationHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, handler.RegisterPath, http.StatusFound)
	})

	r.Route(handler.RegisterPath, func(r chi.Router) {
		r.Get("/", registrationHandler.Show)
		r.Post("/", registrationHandler.Submit)
		r.Get("/success", registrationHandler.Success)
	})

	logger.Debug("Routes registered", "register", handler.RegisterPath, "success", handler.SuccessPath)
	return r
}
