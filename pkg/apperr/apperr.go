// Package apperr defines the error taxonomy shared by services and
// controllers: validation failures (caller mistakes, field-level detail),
// conflicts (business-rule violations like insufficient stock), and missing
// entities. Transient external failures never appear here; they stay inside
// the queue workers and are retried there.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input with per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d field(s))", len(e.Fields))
}

// Validation builds a ValidationError from a field → message map.
func Validation(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// ValidationField builds a single-field ValidationError.
func ValidationField(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ConflictError reports a business-rule violation on a named resource.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// Conflict builds a ConflictError with a human-readable reason.
func Conflict(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
