package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ValidationError is a malformed or out-of-policy input. Never retried.
type ValidationError struct {
	Message   string
	Field     string
	LineIndex int
	SKU       string
	Requested int
	Remaining int
}

func (e *ValidationError) Error() string {
	if e.SKU != "" {
		if e.Requested > 0 {
			return fmt.Sprintf("%s: sku %s requested %d, remaining %d", e.Message, e.SKU, e.Requested, e.Remaining)
		}
		return fmt.Sprintf("%s: %s", e.Message, e.SKU)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %s at line %d", e.Message, e.Field, e.LineIndex)
	}
	return e.Message
}

// NotFoundError is a missing PO, SKU-within-PO or GRN for the given company.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// ConflictError is a concurrent write that invalidated an earlier
// remaining-quantity read. Safe to retry.
type ConflictError struct {
	SKU       string
	Requested int
	Remaining int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent receipt for sku %s: requested %d, remaining now %d", e.SKU, e.Requested, e.Remaining)
}

// PersistenceError wraps a storage failure. The whole transaction is rolled
// back before it is reported.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// StatusCode maps a business error to its HTTP status.
func StatusCode(err error) int {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var conflictErr *ConflictError

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &conflictErr):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
