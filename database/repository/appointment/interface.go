// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no appointment matches the given id.
var ErrNotFound = errors.New("appointment not found")

// ErrStatusChanged is returned by UpdateStatus when the appointment's
// status no longer matches the expected current status. Transitions
// are compare-and-swap on status so no two can race on the same
// appointment.
var ErrStatusChanged = errors.New("appointment status changed concurrently")

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// UpdateStatus swaps status from -> to iff the stored status still
	// equals from, applying the extra field updates atomically.
	UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus, set map[string]interface{}) error
	// ListPendingBefore returns pending appointments created before the
	// cutoff, for the expiry sweep.
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error)
	ListByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Appointment, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
