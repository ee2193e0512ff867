// internal/api/handler/tracker.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"exercise-tracker/internal/api/types"
	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
)

// DefaultTimeout bounds the handling of a single request.
const DefaultTimeout = 30 * time.Second

// UserIDParam is the chi URL parameter holding the user id.
const UserIDParam = "userID"

// Plain-text failure bodies of the user endpoints.
const (
	msgCreateUserFailed = "An error occurred while creating a user."
	msgListUsersFailed  = "An error occurred while fetching users."
	msgUserNotFound     = "User not found"
	msgInternalError    = "Internal server error"
)

// TrackerHandler handles HTTP requests for users, exercises and logs.
type TrackerHandler struct {
	service service.TrackerService
	logger  *slog.Logger
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(svc service.TrackerService, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *TrackerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send plain-text responses.
func (h *TrackerHandler) respondWithText(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(message))
}

// respondWithError maps service errors of the exercise and log endpoints to JSON error bodies.
// User lookups that fail are reported as 400 only when notFoundIsClientError is set.
func (h *TrackerHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error, notFoundIsClientError bool) {
	statusCode := http.StatusInternalServerError
	message := msgInternalError

	switch {
	case util.IsError(err, util.ErrValidation):
		statusCode = http.StatusBadRequest
		message = validationMessage(err)
	case notFoundIsClientError && util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusBadRequest
		message = msgUserNotFound
	default:
		h.logger.Error("Unhandled service error", "error", err, "path", r.URL.Path)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

// CreateUser handles user registration.
// POST /api/users
func (h *TrackerHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := decodeCreateUser(r)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		h.logger.Warn("Rejected user creation", "error", err)
		h.respondWithText(w, http.StatusInternalServerError, msgCreateUserFailed)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Username)
	if err != nil {
		h.logger.Error("Failed to create user", "username", req.Username, "error", err)
		h.respondWithText(w, http.StatusInternalServerError, msgCreateUserFailed)
		return
	}

	h.respondWithJSON(w, http.StatusOK, toUserResponse(*user))
}

// ListUsers handles listing every user.
// GET /api/users
func (h *TrackerHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		h.respondWithText(w, http.StatusInternalServerError, msgListUsersFailed)
		return
	}

	resp := make([]types.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}

// AddExercise handles recording an exercise for a user.
// POST /api/users/{userID}/exercises
func (h *TrackerHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, UserIDParam)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := decodeAddExercise(r)
	if err == nil {
		err = req.Validate()
	}
	var input service.AddExerciseInput
	if err == nil {
		input, err = req.Input()
	}
	if err != nil {
		h.respondWithError(w, r, err, false)
		return
	}

	// An unknown user is a generic failure here; only the log endpoint answers 400.
	user, exercise, err := h.service.AddExercise(r.Context(), userID, input)
	if err != nil {
		h.respondWithError(w, r, err, false)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.ExerciseResponse{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    json.Number(exercise.Duration.String()),
		Date:        domain.FormatDate(exercise.Date),
		ID:          user.ID,
	})
}

// GetLog handles the filtered exercise log of a user.
// GET /api/users/{userID}/logs
func (h *TrackerHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, UserIDParam)

	query, err := parseLogQuery(r)
	if err != nil {
		h.respondWithError(w, r, err, true)
		return
	}

	user, exercises, err := h.service.GetLog(r.Context(), userID, query)
	if err != nil {
		h.respondWithError(w, r, err, true)
		return
	}

	log := make([]types.LogEntry, 0, len(exercises))
	for _, e := range exercises {
		log = append(log, types.LogEntry{
			Description: e.Description,
			Duration:    json.Number(e.Duration.String()),
			Date:        domain.FormatDate(e.Date),
		})
	}

	h.respondWithJSON(w, http.StatusOK, types.LogResponse{
		Username: user.Username,
		Count:    len(log),
		ID:       userID,
		Log:      log,
	})
}

func toUserResponse(u domain.User) types.UserResponse {
	return types.UserResponse{ID: u.ID, Username: u.Username}
}
