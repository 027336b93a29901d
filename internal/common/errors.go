// Package common defines sentinel errors shared by the storage, service and
// transport layers of userbook. Callers should use errors.Is / errors.As to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrStorageUnavailable  = errors.New("storage unavailable")

	// Form token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ConstraintError reports a write rejected because Field would no longer be
// unique. It matches ErrConstraintViolation with errors.Is.
type ConstraintError struct {
	Field string
	Err   error
}

func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", ErrConstraintViolation, e.Err)
	}
	return fmt.Sprintf("%s: duplicate %s", ErrConstraintViolation, e.Field)
}

func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConstraintViolation}
	}
	return []error{ErrConstraintViolation, e.Err}
}
