package services

import (
	"fmt"

	"github.com/amey40375/getshiny-mobile-care/models"
)

// Service operations report failures as one of the typed errors below.
// Nothing here is fatal: every failure is local to one call and the caller
// may retry with corrected input or after the conflicting state settles.

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports a lost race on a conditional update, e.g. a claim
// on an order another mitra already took.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// InvalidTransitionError reports an order status change the lifecycle
// graph does not permit.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// DuplicateError reports a uniqueness violation, e.g. a second mitra
// application for the same account.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// NotFoundError reports a referenced entity or identity that does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// AuthorizationError reports a caller lacking the required role or state.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}
