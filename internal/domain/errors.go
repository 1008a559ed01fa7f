package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("duplicate content")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError indicates caller-supplied data that violates a structural rule
// (blank deck name, content outside the allowed options, card missing FRONT/BACK).
type ValidationError struct {
	Message        string
	AllowedOptions []string // set when content failed an option-set rule
}

func (e *ValidationError) Error() string {
	if len(e.AllowedOptions) > 0 {
		return fmt.Sprintf("%s (allowed: %s)", e.Message, strings.Join(e.AllowedOptions, ", "))
	}
	return e.Message
}

func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError indicates a referenced entity does not exist
type NotFoundError struct {
	Message      string
	ResourceType string // deck, card, template, template field, parent path
}

func (e *NotFoundError) Error() string        { return e.Message }
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError represents a mutation that would break a uniqueness or emptiness invariant
type ConflictError struct {
	Message      string   // Human-readable error message
	ResourceType string   // Type of resource (deck, card)
	ResourceID   string   // ID of the existing/conflicting resource
	ResourceIDs  []string // Offending resources when more than one is involved
}

func (e *ConflictError) Error() string        { return e.Message }
func (e *ConflictError) StatusCode() int      { return http.StatusConflict }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// DuplicateError is a soft conflict: other cards already hold the submitted content.
// The caller may resubmit with the allow-duplicate flag set.
type DuplicateError struct {
	Message string
	Content string
	CardIDs []string
}

func (e *DuplicateError) Error() string        { return e.Message }
func (e *DuplicateError) StatusCode() int      { return http.StatusConflict }
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// UnauthorizedError indicates authentication failure
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string        { return e.Message }
func (e *UnauthorizedError) StatusCode() int      { return http.StatusUnauthorized }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// ForbiddenError indicates authorization failure
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string        { return e.Message }
func (e *ForbiddenError) StatusCode() int      { return http.StatusForbidden }
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// NewValidationError is a shorthand for a ValidationError without option evidence
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError builds a NotFoundError for the given resource type
func NewNotFoundError(resourceType, format string, args ...any) error {
	return &NotFoundError{
		Message:      fmt.Sprintf(format, args...),
		ResourceType: resourceType,
	}
}
