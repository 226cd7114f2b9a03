package booking

import (
	"errors"
	"fmt"

	"salonbook/models"
)

// ErrSlotUnavailable is an expected, retryable outcome: the requested
// slot is no longer free. Callers should re-list slots and retry.
var ErrSlotUnavailable = errors.New("requested slot is no longer available")

// ErrPricingInvariant signals a computed total below zero. The
// composer clamps, so this should be unreachable; it is treated as a
// programmer error and logged loudly, never silently re-clamped.
var ErrPricingInvariant = errors.New("pricing invariant violated: negative total")

// ValidationError covers malformed or missing input, rejected before
// any side effect.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// InvalidTransitionError identifies an illegal state change. The
// appointment is always left unchanged.
type InvalidTransitionError struct {
	Current   models.AppointmentStatus
	Requested models.AppointmentStatus
	Role      models.ActorRole
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s for role %s", e.Current, e.Requested, e.Role)
}

// PaymentInitiationError wraps a gateway failure that triggered a
// booking rollback.
type PaymentInitiationError struct {
	Cause error
}

func (e *PaymentInitiationError) Error() string {
	return fmt.Sprintf("payment initiation failed: %v", e.Cause)
}

func (e *PaymentInitiationError) Unwrap() error {
	return e.Cause
}
