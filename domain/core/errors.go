package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrParse         = errors.New("malformed finish time")
	ErrMissingColumn = errors.New("required column missing")

	// Statistics errors
	ErrEmptyGroup = errors.New("median requested over an empty group")

	// Configuration errors
	ErrConfiguration = errors.New("invalid configuration")
)

// Error constructors with context
func NewParseError(value string, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrParse, value, reason)
}

func NewEmptyGroupError(group string) error {
	if group == "" {
		return fmt.Errorf("%w: overall", ErrEmptyGroup)
	}
	return fmt.Errorf("%w: %s", ErrEmptyGroup, group)
}

func NewConfigurationError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrConfiguration, field, reason)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

// Error checking helpers
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

func IsEmptyGroupError(err error) bool {
	return errors.Is(err, ErrEmptyGroup)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsInputError reports whether err was caused by the contents of the input table.
func IsInputError(err error) bool {
	return IsParseError(err) || errors.Is(err, ErrMissingColumn)
}
