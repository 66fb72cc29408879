package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrCodeMismatch     = errors.New("confirmation code does not match")
	ErrUnknownCategory  = errors.New("unknown category")
)

// ValidationError — пустое обязательное поле, проверяется до записи в БД
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q must not be empty", e.Field)
}

func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}
