package component

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOptions is matched by every option validation failure.
var ErrInvalidOptions = errors.New("invalid options")

// InvalidOptionsError reports options that no handler consumed.
type InvalidOptionsError struct {
	Component string
	Pairs     []string // sorted key=value pairs
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid options: %s", strings.Join(e.Pairs, " "))
}

func (e *InvalidOptionsError) Is(target error) bool {
	return target == ErrInvalidOptions
}

// MissingOptionError reports a required option that was not given.
type MissingOptionError struct {
	Component string
	Key       string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("invalid options: %s requires %s=<value>", e.Component, e.Key)
}

func (e *MissingOptionError) Is(target error) bool {
	return target == ErrInvalidOptions
}

// InvalidOptionValueError reports an option whose value is not accepted.
type InvalidOptionValueError struct {
	Component string
	Key       string
	Value     string
	Allowed   []string
}

func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("invalid options: %s=%s for %s (valid values: %s)",
		e.Key, e.Value, e.Component, strings.Join(e.Allowed, ", "))
}

func (e *InvalidOptionValueError) Is(target error) bool {
	return target == ErrInvalidOptions
}
