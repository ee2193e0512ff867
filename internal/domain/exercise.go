// internal/domain/exercise.go
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Exercise is a single logged activity. It belongs to a user only through the
// username copied at creation time.
type Exercise struct {
	ID          string          `db:"id"`
	Username    string          `db:"username"`
	Description string          `db:"description"`
	Duration    decimal.Decimal `db:"duration"` // minutes
	Date        time.Time       `db:"date"`
}

// Duration bounds. Exponent and coefficient size are checked before the value
// so that exponent-form input is never expanded.
const (
	maxDurationExponent = 9
	minDurationExponent = -6
	maxDurationBits     = 64
)

// MaxDuration is the largest accepted duration magnitude, in minutes.
var MaxDuration = decimal.New(1, maxDurationExponent)

// ErrDurationOutOfRange is returned by CheckDuration.
var ErrDurationOutOfRange = errors.New("duration is out of range")

// CheckDuration rejects durations larger than MaxDuration in magnitude or with
// more than six decimal places.
func CheckDuration(d decimal.Decimal) error {
	if exp := d.Exponent(); exp > maxDurationExponent || exp < minDurationExponent {
		return ErrDurationOutOfRange
	}
	if d.Coefficient().BitLen() > maxDurationBits {
		return ErrDurationOutOfRange
	}
	if d.Abs().GreaterThan(MaxDuration) {
		return ErrDurationOutOfRange
	}
	return nil
}

// NewExercise creates an Exercise for the given user.
func NewExercise(user *User, description string, duration decimal.Decimal, date time.Time) *Exercise {
	return &Exercise{
		Username:    user.Username,
		Description: description,
		Duration:    duration,
		Date:        date.UTC(),
	}
}

// ExerciseFilter narrows an exercise lookup. Zero values mean "no constraint";
// From and To are inclusive.
type ExerciseFilter struct {
	Username string
	From     *time.Time
	To       *time.Time
	Limit    int
}

// Matches reports whether e satisfies the filter's username and date bounds.
// Limit is not considered.
func (f ExerciseFilter) Matches(e Exercise) bool {
	if f.Username != "" && e.Username != f.Username {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}
