// File: database/repository/directory/interface.go
package directoryRepo

import (
	"context"
	"errors"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrServiceNotFound       = errors.New("service not found")
	ErrStaffNotFound         = errors.New("staff not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// Directory is the read-only source of service, staff and payment
// method records. The booking engine treats everything it returns as a
// snapshot taken at request time.
type Directory interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	GetStaffByID(ctx context.Context, id string) (*models.Staff, error)
	// EligibleStaff returns the active staff members associated with
	// the service, ordered least-recently-booked first so deterministic
	// assignment can pick the head of the list.
	EligibleStaff(ctx context.Context, serviceID string) ([]models.Staff, error)
	GetPaymentMethodByID(ctx context.Context, id string) (*models.PaymentMethod, error)
	// TouchStaffBooked records a successful assignment, feeding the
	// least-recently-booked ordering.
	TouchStaffBooked(ctx context.Context, staffID string, at time.Time) error
}

type mongoDirectory struct {
	services       *mongo.Collection
	staff          *mongo.Collection
	paymentMethods *mongo.Collection
}

// NewMongoDirectory constructs a Directory backed by MongoDB.
func NewMongoDirectory() Directory {
	db := database.DB()
	return &mongoDirectory{
		services:       db.Collection("services"),
		staff:          db.Collection("staff"),
		paymentMethods: db.Collection("payment_methods"),
	}
}
