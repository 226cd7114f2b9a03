package calendarRepo

import (
	"context"
	"errors"

	"salonbook/models"
)

// ErrConflict is returned by Reserve when any portion of the requested
// range, buffer included, is already committed. It is an expected
// outcome, not a failure.
var ErrConflict = errors.New("calendar: requested range conflicts with an existing reservation")

// Index is the authoritative record of committed (staff, date,
// time-range) occupancy. Reserve must be linearizable with respect to
// concurrent calls for the same staff member; it is the sole
// synchronization point preventing double-booking. The index knows
// nothing about prices or appointment status.
type Index interface {
	// Reserve atomically checks the range [startMinute,
	// startMinute+committedMinutes) against all live reservations for
	// the staff member on that date and commits it if free, returning
	// an opaque token. Returns ErrConflict on any overlap.
	Reserve(ctx context.Context, staffID, date string, startMinute, committedMinutes int) (string, error)

	// Release frees a committed range. Releasing an unknown or
	// already-released token is a no-op.
	Release(ctx context.Context, token string) error

	// Committed returns a snapshot of the live ranges for a staff
	// member on a date. Read-only; callers must re-validate via
	// Reserve before committing.
	Committed(ctx context.Context, staffID, date string) ([]models.Range, error)
}
