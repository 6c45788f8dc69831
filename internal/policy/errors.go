package policy

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid screening configuration: a negative
// cutoff, a non-positive threshold, an unknown species in a pair key,
// or a document that fails schema validation. Configuration errors
// abort before any structure is processed.
type ConfigError struct {
	// Field names the offending configuration field when known.
	Field string

	// Message describes the violation.
	Message string

	// Err is the underlying decode/validation error, if any.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
