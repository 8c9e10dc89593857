package config

import (
	"fmt"
	"strings"
)

// ValidationError describes a single invalid configuration value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

var traceLevels = []string{"debug", "info", "error"}

// Validate checks c for invalid values and returns all errors found.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	if !contains(traceLevels, strings.ToLower(c.Trace)) {
		errs = append(errs, ValidationError{"trace", c.Trace, "must be one of Debug, Info, Error"})
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, ValidationError{"color", c.Color, "must be one of auto, always, never"})
	}
	if e := c.Cup.DirectoryExponent; e < 2 || e > 30 {
		errs = append(errs, ValidationError{"cup.directory_exponent", e, "must be in [2,30]"})
	}
	if c.Cup.MaxNodes < 0 {
		errs = append(errs, ValidationError{"cup.max_nodes", c.Cup.MaxNodes, "must not be negative"})
	}
	return errs
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
