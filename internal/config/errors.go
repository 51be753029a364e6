package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidPrecision indicates a negative session precision.
	ErrInvalidPrecision = errors.New("precision must not be negative")

	// ErrInvalidLogLevel indicates an unknown logging level.
	ErrInvalidLogLevel = errors.New("log level must be debug, info, warn, or error")

	// ErrInvalidValue indicates a setting outside its allowed range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrTypeMismatch indicates a value whose type doesn't match the setting.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ValidationError reports which setting failed validation.
type ValidationError struct {
	Path  string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid setting %s = %v: %v", e.Path, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
