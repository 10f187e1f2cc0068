package config

import (
	"errors"
	"fmt"
)

// Error codes for configuration failures. Every configuration failure
// is fatal to the current session only; it never touches the shared
// judgment log or other participants.
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeParse      = "PARSE_ERROR"
	ErrCodeSchema     = "SCHEMA_VIOLATION"
	ErrCodeNoSubjects = "NO_SUBJECTS"
)

// Error is a structured configuration error.
type Error struct {
	// Code identifies the error category.
	Code string

	// Path names the offending file, when there is one.
	Path string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError reports whether err is (or wraps) a configuration
// error. Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}

// NewNoSubjectsError reports that reconciliation produced zero items.
func NewNoSubjectsError() *Error {
	return &Error{
		Code:    ErrCodeNoSubjects,
		Message: "the two datasets share no subjects; check that they come from matching pipeline runs",
	}
}
