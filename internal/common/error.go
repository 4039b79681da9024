// Package common defines shared constants and sentinel errors used across
// the NutriCare server layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors. ErrorNotFound is also returned for rows owned
	// by somebody else, so callers cannot probe for foreign ids.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// Upload errors.
	ErrInvalidFileType = errors.New("invalid file type")
	ErrPayloadTooLarge = errors.New("payload too large")

	// Nutrition / yoga data errors.
	ErrMissingField               = errors.New("missing field")
	ErrEmptyQuery                 = errors.New("empty query")
	ErrNoNutritionData            = errors.New("no nutrition data found")
	ErrExternalServiceUnavailable = errors.New("external service unavailable")
	ErrDataSourceUnavailable      = errors.New("data source unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// MissingFieldError names the request field that was absent.
// It matches ErrMissingField with errors.Is.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
