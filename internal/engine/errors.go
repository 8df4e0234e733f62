package engine

import (
	"fmt"
	"strings"
)

// Represents an invalid grid configuration detected at construction.
// Runtime operations never return errors; anything that could go wrong
// later degrades to a no-op or an empty view instead.
type ConfigError struct {
	Field  string // option field name
	Reason string // human-readable explanation
}

func (e *ConfigError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("grid configuration error in %s", e.Field))

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewNilIdentity() *ConfigError {
	return &ConfigError{
		Field:  "Identity",
		Reason: "identity accessor is required",
	}
}
