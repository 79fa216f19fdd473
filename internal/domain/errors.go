package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrSessionRevoked     = errors.New("session has been cleared")
	ErrUnknownSourceKind  = errors.New("unknown source document kind")
	ErrValidation         = errors.New("input validation failed")
	ErrAllocationExceeded = errors.New("proposed quantities exceed remaining balance")
	ErrAllocationConflict = errors.New("backend rejected the allocation; remaining quantities changed")
	ErrIncompleteInvoice  = errors.New("invoice is missing fields required for e-invoice export")
	ErrBackendUnavailable = errors.New("backend request failed")
	ErrUploadFailed       = errors.New("file upload to storage failed")
)

// FieldError is a single per-field input validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the full set of input validation failures for one request.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (fe FieldErrors) Unwrap() error { return ErrValidation }

// Violation is one line whose proposed quantity cannot be allocated.
type Violation struct {
	ItemName string `json:"item_name"`
	Error    string `json:"error"`
}

// AllocationError carries every violation found for a proposed consumption.
type AllocationError struct {
	Violations []Violation
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s (%d violations)", ErrAllocationExceeded, len(e.Violations))
}

func (e *AllocationError) Unwrap() error { return ErrAllocationExceeded }
