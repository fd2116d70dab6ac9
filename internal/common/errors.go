// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Provider errors.
	ErrProviderFailed = errors.New("classification provider failed")
	ErrModelLoad      = errors.New("no local model could be loaded")
	ErrEmptyResult    = errors.New("provider returned no usable scores")

	// Caller errors.
	ErrValidation = errors.New("validation failed")

	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ProviderError is returned by the remote inference client once every retry
// has been spent. Callers should not retry it; the next provider tier takes over.
type ProviderError struct {
	Err      error
	Provider string
	Attempts int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Provider, e.Attempts, e.Err)
}

// Unwrap exposes both the sentinel and the last observed error.
func (e *ProviderError) Unwrap() []error {
	return []error{ErrProviderFailed, e.Err}
}

// ModelLoadError reports that none of the candidate local models initialized.
type ModelLoadError struct {
	Candidates []string
	Errs       []error
}

func (e *ModelLoadError) Error() string {
	parts := make([]string, 0, len(e.Candidates))
	for i, name := range e.Candidates {
		if i < len(e.Errs) && e.Errs[i] != nil {
			parts = append(parts, fmt.Sprintf("%s: %v", name, e.Errs[i]))
		} else {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return ErrModelLoad.Error() + ": no candidates configured"
	}
	return fmt.Sprintf("%v (%s)", ErrModelLoad, strings.Join(parts, "; "))
}

func (e *ModelLoadError) Unwrap() error {
	return ErrModelLoad
}

// ValidationError represents invalid caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a new validation error for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrColdStart) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
