package gan

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every ConfigurationError via errors.Is.
var ErrInvalidConfig = errors.New("gan: invalid configuration")

// ConfigurationError reports a configuration or stage descriptor that
// cannot produce an architecture.
//
// It is raised at construction time, never during a forward pass, and is
// not retryable: construction is deterministic.
type ConfigurationError struct {
	Field  string // Offending field (e.g., "out_channels", "normalization")
	Value  any    // Offending value
	Reason string // Human-readable reason
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gan: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfig
}

func configError(field string, value any, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}
