package booking

import (
	"context"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	calendarRepo "salonbook/database/repository/calendar"
	directoryRepo "salonbook/database/repository/directory"
	rewardRepo "salonbook/database/repository/reward"
	"salonbook/models"
	"salonbook/services/notification"
)

// BookingService is the appointment booking and pricing engine.
type BookingService interface {
	// ListSlots returns the bookable start times for a service on a
	// date, optionally narrowed to one staff member.
	ListSlots(ctx context.Context, serviceID, staffID, date string) ([]models.TimeSlot, error)
	// Book orchestrates a single booking end-to-end with
	// all-or-nothing semantics.
	Book(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error)
	// Transition moves an appointment through the status state
	// machine, applying the side effects the transition carries.
	Transition(ctx context.Context, appointmentID string, to models.AppointmentStatus, role models.ActorRole, reason string) (*models.Appointment, error)
	// HandlePaymentResult maps a gateway callback onto the
	// pending -> confirmed / pending -> cancelled transitions.
	HandlePaymentResult(ctx context.Context, res models.PaymentResult) error
	// ExpireStalePending cancels pending appointments whose payment
	// grace period has elapsed. Driven by the background sweep.
	ExpireStalePending(ctx context.Context) (int, error)

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListCustomerAppointments(ctx context.Context, customerID string) ([]models.Appointment, error)
	ListStaffDay(ctx context.Context, staffID, date string) ([]models.Appointment, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Calendar     calendarRepo.Index
	Appointments appointmentRepo.AppointmentRepository
	Rewards      rewardRepo.Ledger
	Directory    directoryRepo.Directory
	Gateway      PaymentGateway
	Emitter      notification.EventEmitter
	Resolver     *SlotResolver
	Policy       CancellationPolicy

	PendingGrace   time.Duration
	PaymentTimeout time.Duration
	Now            func() time.Time // overridable in tests
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) ListSlots(ctx context.Context, serviceID, staffID, date string) ([]models.TimeSlot, error) {
	return s.Resolver.Resolve(ctx, serviceID, staffID, date)
}

func (s *DefaultBookingService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.Appointments.GetByID(ctx, id)
}

func (s *DefaultBookingService) ListCustomerAppointments(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return s.Appointments.ListByCustomer(ctx, customerID)
}

func (s *DefaultBookingService) ListStaffDay(ctx context.Context, staffID, date string) ([]models.Appointment, error) {
	return s.Appointments.ListByStaffAndDate(ctx, staffID, date)
}
