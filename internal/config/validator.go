package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MultiValidationError represents multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("validation failed with %d errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		builder.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

// logLevels are the accepted logging.level values.
var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// Validate validates Config.
func (c *Config) Validate() error {
	var errors []ValidationError
	add := func(field, msg string) {
		errors = append(errors, ValidationError{Field: field, Message: msg})
	}

	if c.Version == "" {
		add("version", "version is required")
	} else if c.Version != SchemaVersion {
		add("version", fmt.Sprintf("unsupported version %q, expected %q", c.Version, SchemaVersion))
	}

	if c.DynamicHeader == "" {
		add("dynamic_header", "dynamic loading header path is required")
	}

	if len(c.Headers) == 0 {
		add("headers", "at least one canonical header is required")
	}
	for i, h := range c.Headers {
		if strings.TrimSpace(h) == "" {
			add(fmt.Sprintf("headers[%d]", i), "header name cannot be empty")
		}
	}

	if strings.TrimSpace(c.Grammar.Tag) == "" || strings.ContainsAny(c.Grammar.Tag, " \t") {
		add("grammar.tag", "tag must be a single non-empty token")
	}
	if c.Grammar.Terminator == "" {
		add("grammar.terminator", "terminator is required")
	}

	if c.Naming.Prefix == "" {
		add("naming.prefix", "function name prefix is required")
	}
	for i, r := range c.Naming.Replacements {
		if r.From == "" {
			add(fmt.Sprintf("naming.replacements[%d].from", i), "replacement source cannot be empty")
		}
	}

	if len(c.Verify.StrayMarkers) == 0 {
		add("verify.stray_markers", "at least one stray marker is required")
	}
	for i, m := range c.Verify.StrayMarkers {
		if m == "" {
			add(fmt.Sprintf("verify.stray_markers[%d]", i), "marker cannot be empty")
		}
	}

	if c.Files.MaxSize < 0 {
		add("files.max_size", "max size cannot be negative")
	}

	if c.Logging.Level != "" && !slices.Contains(logLevels, c.Logging.Level) {
		add("logging.level", fmt.Sprintf("log level must be one of %s", strings.Join(logLevels, ", ")))
	}

	if len(errors) > 0 {
		return &MultiValidationError{Errors: errors}
	}
	return nil
}
