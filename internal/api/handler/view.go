// internal/api/handler/view.go
package handler

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/service"
)

//go:embed templates/index.html
var templateFS embed.FS

//go:embed static/style.css
var stylesheet []byte

var indexTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"formatDate": domain.FormatDate}).
		ParseFS(templateFS, "templates/index.html"),
)

type indexPage struct {
	Users     []domain.User
	Exercises []domain.Exercise
}

// ViewHandler renders the server-side overview page.
type ViewHandler struct {
	service service.TrackerService
	logger  *slog.Logger
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(svc service.TrackerService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{service: svc, logger: logger}
}

// Index lists current users and exercises.
// GET /
func (h *ViewHandler) Index(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	exercises, err := h.service.ListExercises(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexPage{Users: users, Exercises: exercises}); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Stylesheet serves the page stylesheet.
// GET /style.css
func (h *ViewHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(stylesheet)
}

func (h *ViewHandler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("Failed to render index", "error", err)
	http.Error(w, "An error occurred while loading the page.", http.StatusInternalServerError)
}
