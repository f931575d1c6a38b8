// Package domain defines error types for the storefront.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ProductNotFoundError is returned when a product with the given id or slug is not found
type ProductNotFoundError struct {
	Ref string
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Ref)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidLineItemError is returned when a cart line item fails validation
type InvalidLineItemError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidLineItemError
func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("invalid line item: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidLineItemError) Is(target error) bool {
	_, ok := target.(*InvalidLineItemError)
	return ok
}

// ValidationError aggregates the per-field failures of one checkout step.
// It blocks step advancement only; it is never propagated past the wizard.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// CheckoutStateError is returned for transitions the wizard does not allow
// from its current state (empty cart, wrong step, submission in flight).
type CheckoutStateError struct {
	Reason string
}

// Error implements the error interface for CheckoutStateError
func (e *CheckoutStateError) Error() string {
	return fmt.Sprintf("checkout: %s", e.Reason)
}

// Is allows proper error type checking with errors.Is()
func (e *CheckoutStateError) Is(target error) bool {
	_, ok := target.(*CheckoutStateError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(ref string) error {
	return &ProductNotFoundError{Ref: ref}
}

// NewInvalidLineItemError creates a new InvalidLineItemError
func NewInvalidLineItemError(field, reason string, value interface{}) error {
	return &InvalidLineItemError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewValidationError creates a new ValidationError from per-field messages
func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// NewCheckoutStateError creates a new CheckoutStateError
func NewCheckoutStateError(reason string) error {
	return &CheckoutStateError{Reason: reason}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidLineItemError checks if an error is an InvalidLineItemError
func IsInvalidLineItemError(err error) bool {
	var ile *InvalidLineItemError
	return errors.As(err, &ile)
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidationError extracts a ValidationError for access to its field map
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// IsCheckoutStateError checks if an error is a CheckoutStateError
func IsCheckoutStateError(err error) bool {
	var cse *CheckoutStateError
	return errors.As(err, &cse)
}
