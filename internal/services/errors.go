package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
// Their text is the exact message the API returns.
var (
	ErrTaskNotFound      = errors.New("Task not found")
	ErrDeveloperNotFound = errors.New("Developer not found")
	ErrEmailExists       = errors.New("Email already exists")
)

// ValidationError marks a request rejected before touching the store.
type ValidationError struct {
	msg string
}

func validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.msg }

// QueryError wraps a storage-layer failure with the query it came
// from. The underlying message propagates verbatim to the transport
// boundary; queries are never retried here.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return e.Op + " query failed: " + e.Err.Error() }

func (e *QueryError) Unwrap() error { return e.Err }

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure (the driver exposes no typed error for it).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
