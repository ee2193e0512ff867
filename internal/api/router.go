// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exercise-tracker/internal/api/handler"
	"exercise-tracker/internal/observability"
)

// RouterOptions carries router-level settings.
// A zero RequestTimeout falls back to handler.DefaultTimeout.
type RouterOptions struct {
	CORSAllowedOrigin string
	RequestTimeout    time.Duration
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(trackerHandler *handler.TrackerHandler, viewHandler *handler.ViewHandler, logger *slog.Logger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = handler.DefaultTimeout
	}

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(observability.Middleware)
	r.Use(cors(opts.CORSAllowedOrigin))
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", viewHandler.Index)
	r.Get("/style.css", viewHandler.Stylesheet)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", trackerHandler.CreateUser)
		r.Get("/", trackerHandler.ListUsers)
		r.Post("/{"+handler.UserIDParam+"}/exercises", trackerHandler.AddExercise)
		r.Get("/{"+handler.UserIDParam+"}/logs", trackerHandler.GetLog)
	})

	return r
}
