package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/taxostore/types"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "add literature", "export")
	Cause       string   // The underlying cause (e.g., "record not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for validation failures
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewNotFoundError creates an error for missing records
func NewNotFoundError(operation string, kind types.Kind, id string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("%s with ID %q not found", kind, id),
		Suggestions: suggestions,
		Underlying:  types.ErrNotFound,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for catalog failures, describing the
// common cases in user terms.
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "catalog operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		switch {
		case errors.Is(underlying, types.ErrValidation):
			cause = "invalid record"
		case errors.Is(underlying, types.ErrUnsupportedKind):
			cause = "unknown record kind"
			suggestions = append(suggestions, "Valid kinds are literature, taxonomy and sample")
		case errors.Is(underlying, types.ErrNotFound):
			cause = "record not found"
			suggestions = append(suggestions, CommonSuggestions.CheckID)
		case errors.Is(underlying, types.ErrStorage):
			cause = "could not read or write the data directory"
			errStr := strings.ToLower(underlying.Error())
			switch {
			case strings.Contains(errStr, "permission denied"):
				cause = "insufficient permissions to access the data directory"
				suggestions = append(suggestions, CommonSuggestions.CheckPerms)
			case strings.Contains(errStr, "lock"):
				cause = "data directory is locked by another process"
			case strings.Contains(errStr, "parse"):
				cause = "a collection document is not valid JSON"
			}
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewStoreError(operation, err, suggestions...)
}

// Common error messages and suggestions
var (
	CommonSuggestions = struct {
		CheckDataDir string
		CheckID      string
		CheckConfig  string
		RunHelp      string
		CheckPerms   string
	}{
		CheckDataDir: "Verify --data-dir points to the catalog directory",
		CheckID:      "Verify the record ID exists (try the 'list' command first)",
		CheckConfig:  "Check your configuration file or TAXOSTORE_* environment variables",
		RunHelp:      "Run command with --help for usage information",
		CheckPerms:   "Check file permissions and directory access",
	}
)
