package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every ValidationError.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrHelp is returned by ReadArgs when help was printed instead of
	// parsing a configuration. It is not a failure.
	ErrHelp = errors.New("help requested")
)

// ValidationError reports the first configuration rule a mapping violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// FormatError reports a config file that is not valid TOML.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
