// internal/api/handler/request.go
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// Validate ensures request correctness.
func (r CreateUserRequest) Validate() error {
	if r.Username == "" {
		return validationError("username is required")
	}
	return nil
}

// AddExerciseRequest represents the request body for adding an exercise.
// Duration is a pointer so that a missing value can be told apart from zero.
type AddExerciseRequest struct {
	Description string           `json:"description"`
	Duration    *decimal.Decimal `json:"duration"`
	Date        string           `json:"date"`
}

// Validate ensures request correctness. The date is checked by Input.
func (r AddExerciseRequest) Validate() error {
	if r.Description == "" {
		return validationError("description is required")
	}
	if r.Duration == nil {
		return validationError("duration is required")
	}
	if err := domain.CheckDuration(*r.Duration); err != nil {
		return validationError(fmt.Sprintf("%v: at most %s minutes with six decimal places", err, domain.MaxDuration))
	}
	return nil
}

// Input converts a validated request into service input, parsing the optional date.
func (r AddExerciseRequest) Input() (service.AddExerciseInput, error) {
	input := service.AddExerciseInput{
		Description: r.Description,
		Duration:    *r.Duration,
	}
	if r.Date != "" {
		date, err := domain.ParseCalendarDate(r.Date)
		if err != nil {
			return service.AddExerciseInput{}, validationError(err.Error())
		}
		input.Date = &date
	}
	return input, nil
}

// decodeBody fills dst from a JSON body, or from form fields for urlencoded and
// multipart bodies. fields maps form keys to setters.
func decodeBody(r *http.Request, dst interface{}, fields map[string]func(string) error) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return validationError("unable to parse body")
		}
		return nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return validationError("unable to parse body")
		}
	} else if err := r.ParseForm(); err != nil {
		return validationError("unable to parse body")
	}
	for key, set := range fields {
		if value := r.PostForm.Get(key); value != "" {
			if err := set(value); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeCreateUser(r *http.Request) (CreateUserRequest, error) {
	var req CreateUserRequest
	err := decodeBody(r, &req, map[string]func(string) error{
		"username": func(v string) error { req.Username = v; return nil },
	})
	return req, err
}

func decodeAddExercise(r *http.Request) (AddExerciseRequest, error) {
	var req AddExerciseRequest
	err := decodeBody(r, &req, map[string]func(string) error{
		"description": func(v string) error { req.Description = v; return nil },
		"date":        func(v string) error { req.Date = v; return nil },
		"duration": func(v string) error {
			d, err := decimal.NewFromString(strings.TrimSpace(v))
			if err != nil {
				return validationError(fmt.Sprintf("duration %q is not a number", v))
			}
			req.Duration = &d
			return nil
		},
	})
	return req, err
}

// parseLogQuery reads from, to and limit. A limit that is absent, not a number
// or not positive means no limit; fractional limits are truncated.
func parseLogQuery(r *http.Request) (service.LogQuery, error) {
	var q service.LogQuery
	values := r.URL.Query()

	bound := func(key string) (*time.Time, error) {
		raw := values.Get(key)
		if raw == "" {
			return nil, nil
		}
		t, err := domain.ParseBoundDate(raw)
		if err != nil {
			return nil, validationError(fmt.Sprintf("%s: %v", key, err))
		}
		return &t, nil
	}

	var err error
	if q.From, err = bound("from"); err != nil {
		return q, err
	}
	if q.To, err = bound("to"); err != nil {
		return q, err
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 1 && parsed <= float64(maxLimit) {
			q.Limit = int(parsed)
		}
	}
	return q, nil
}

// maxLimit keeps float-to-int conversion in range.
const maxLimit = 1<<31 - 1

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func (e *requestError) Unwrap() error { return util.ErrValidation }

func validationError(msg string) error {
	return &requestError{msg: msg}
}

// validationMessage returns the client-facing text of a validation error.
func validationMessage(err error) string {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.msg
	}
	return err.Error()
}
