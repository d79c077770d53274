package errors

import (
	"errors"
	"net/http"
)

var NotFound = errors.New("Not found")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError carries per-field messages so both the board form and
// the JSON create endpoint can report the same structured errors.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	for field, msgs := range e.Fields {
		if len(msgs) > 0 {
			return field + ": " + msgs[0]
		}
	}
	return "validation failed"
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// UniquenessConflict marks a write rejected by a unique constraint.
// Slug collisions are recovered internally and never reach the caller.
type UniquenessConflict struct {
	Constraint string
}

func (e *UniquenessConflict) Error() string {
	return "unique constraint violated: " + e.Constraint
}

func IsNotFound(err error) bool {
	if errors.Is(err, NotFound) {
		return true
	}
	var statusErr *ErrorWithStatusCode
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
