// internal/api/types/response.go
package types

import "encoding/json"

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// ExerciseResponse is returned after an exercise is added. ID is the owning
// user's id, not the exercise's.
type ExerciseResponse struct {
	Username    string      `json:"username"`
	Description string      `json:"description"`
	Duration    json.Number `json:"duration"`
	Date        string      `json:"date"`
	ID          string      `json:"_id"`
}

// LogEntry is one exercise inside a LogResponse.
type LogEntry struct {
	Description string      `json:"description"`
	Duration    json.Number `json:"duration"`
	Date        string      `json:"date"`
}

// LogResponse is a user's filtered exercise log. Count is len(Log).
type LogResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
