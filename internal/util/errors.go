// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUserNotFound = errors.New("user not found")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicateKey = errors.New("duplicate key") // username already taken
	ErrStorage      = errors.New("storage failure")
)

// IsError reports whether err matches target anywhere in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
