package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidOperation indicates an operation that is not permitted for the
// target resource (e.g. charging a non-revolving credit product).
var ErrInvalidOperation = errors.New("operation not permitted for this resource")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrPersistence indicates a durable-storage read/write failure.
var ErrPersistence = errors.New("persistence failure")

// PersistenceError wraps a storage failure together with a retry affordance.
// The in-memory mutation that preceded the failed write is NOT rolled back;
// Retry re-attempts only the write, not the computation.
type PersistenceError struct {
	Op    string
	Err   error
	Retry func(ctx context.Context) error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPersistence) match any PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError builds a PersistenceError for the given operation.
func NewPersistenceError(op string, err error, retry func(ctx context.Context) error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err, Retry: retry}
}
