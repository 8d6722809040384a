// Package apperror defines the error kinds returned by the inventory engine.
// Each detailed error matches its kind through errors.Is, so callers can branch
// on the kind and still read the detail with errors.As.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds.
var (
	ErrNotFound             = errors.New("not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrDoesNotFit           = errors.New("does not fit")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicate            = errors.New("duplicate")
	ErrForbidden            = errors.New("forbidden")
)

// Machine-readable codes exposed by the HTTP layer.
const (
	CodeInternal             = "INTERNAL_ERROR"
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeInsufficientQuantity = "INSUFFICIENT_STOCK"
	CodeDoesNotFit           = "CAPACITY_EXCEEDED"
	CodeDuplicate            = "DUPLICATE_ENTRY"
	CodeForbidden            = "FORBIDDEN"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeRateLimited          = "RATE_LIMITED"
)

// NotFoundError names the missing entity ("unit" or "product").
type NotFoundError struct {
	Entity string
	ID     string
	UnitID string
}

func (e *NotFoundError) Error() string {
	if e.UnitID != "" {
		return fmt.Sprintf("%s not found: id=%s unit_id=%s", e.Entity, e.ID, e.UnitID)
	}
	return fmt.Sprintf("%s not found: id=%s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientQuantityError reports a sale the stock could not cover.
type InsufficientQuantityError struct {
	ProductID string
	UnitID    string
	Requested int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity: product=%s unit=%s requested=%d", e.ProductID, e.UnitID, e.Requested)
}

func (e *InsufficientQuantityError) Is(target error) bool { return target == ErrInsufficientQuantity }

// DoesNotFitError reports a write that would exceed the unit volume.
type DoesNotFitError struct {
	UnitID   string
	Required float64
	Free     float64
}

func (e *DoesNotFitError) Error() string {
	return fmt.Sprintf("does not fit in unit %s: required=%g free=%g", e.UnitID, e.Required, e.Free)
}

func (e *DoesNotFitError) Is(target error) bool { return target == ErrDoesNotFit }

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateError reports a violated (id, unit_id) or unit id key.
type DuplicateError struct {
	Entity string
	ID     string
	UnitID string
}

func (e *DuplicateError) Error() string {
	if e.UnitID != "" {
		return fmt.Sprintf("duplicate %s: id=%s unit_id=%s", e.Entity, e.ID, e.UnitID)
	}
	return fmt.Sprintf("duplicate %s: id=%s", e.Entity, e.ID)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// ForbiddenError reports a caller acting outside its role or unit.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return "forbidden: " + e.Reason }

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// Helper constructors.

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Status maps an error to its HTTP status and code. Unknown errors are 500.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, ErrInsufficientQuantity):
		return http.StatusConflict, CodeInsufficientQuantity
	case errors.Is(err, ErrDoesNotFit):
		return http.StatusConflict, CodeDoesNotFit
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict, CodeDuplicate
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
