// Domain errors represent business-level failures, NOT HTTP errors.
// Adapters map them to transport status codes.

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the operation clashes with current state.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates input failed a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates the operation is switched off.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError names the entity that could not be found.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("no %s found for %q", e.Entity, e.Key)
	}

	return "no " + e.Entity + " found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// ValidationError describes a field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ImportError rejects an import payload. Index is the offending element,
// or -1 when the payload as a whole is malformed.
type ImportError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ImportError) Error() string {
	if e.Index < 0 {
		return "invalid import: " + e.Reason
	}

	if e.Field != "" {
		return fmt.Sprintf("invalid import: element %d: %s %s", e.Index, e.Field, e.Reason)
	}

	return fmt.Sprintf("invalid import: element %d: %s", e.Index, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ImportError) Unwrap() error {
	return ErrValidation
}

// NewImportError creates an import error for element index.
func NewImportError(index int, field, reason string) error {
	return &ImportError{Index: index, Field: field, Reason: reason}
}

// FetchError wraps a failure to obtain data from the remote quote source.
type FetchError struct {
	Source string
	Cause  error
}

func (e *FetchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("fetch from %s failed", e.Source)
	}

	return fmt.Sprintf("fetch from %s failed: %v", e.Source, e.Cause)
}

// Unwrap exposes both ErrUnavailable and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUnavailable}
	}

	return []error{ErrUnavailable, e.Cause}
}

// NewFetchError creates a fetch error for source.
func NewFetchError(source string, cause error) error {
	return &FetchError{Source: source, Cause: cause}
}

// UnavailableError provides context for unavailable dependencies.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
