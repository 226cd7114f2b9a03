package models

import "time"

// AppointmentStatus is the closed set of appointment lifecycle states.
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Terminal reports whether the status admits no further transitions.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// ActorRole identifies who is requesting a status transition.
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleStaff    ActorRole = "staff"
	RoleAdmin    ActorRole = "admin"
	RoleSystem   ActorRole = "system"
)

// Appointment is a committed booking. It snapshots the service's
// price, duration and buffer at booking time so later service edits
// never retroactively alter it, and it is never hard-deleted:
// cancellation is a status, which keeps historical occupancy
// reconstructable for reporting.
type Appointment struct {
	ID       string `bson:"id" json:"id"`
	TenantID string `bson:"tenant_id" json:"tenant_id"`

	ServiceID          string  `bson:"service_id" json:"service_id"`
	ServiceName        string  `bson:"service_name" json:"service_name"`
	BasePrice          float64 `bson:"base_price" json:"base_price"`
	DurationMinutes    int     `bson:"duration_minutes" json:"duration_minutes"`
	BufferAfterMinutes int     `bson:"buffer_after_minutes" json:"buffer_after_minutes"`

	StaffID         string  `bson:"staff_id,omitempty" json:"staff_id,omitempty"` // empty until assigned
	CustomerID      string  `bson:"customer_id" json:"customer_id"`
	Date            string  `bson:"date" json:"date"`                 // "2006-01-02"
	StartMinute     int     `bson:"start_minute" json:"start_minute"` // minutes from midnight
	FinalPrice      float64 `bson:"final_price" json:"final_price"`
	Subtotal        float64 `bson:"subtotal" json:"subtotal"`
	Discount        float64 `bson:"discount" json:"discount"`
	ProcessingFee   float64 `bson:"processing_fee" json:"processing_fee"`
	PaymentMethodID string  `bson:"payment_method_id" json:"payment_method_id"`
	RewardID        string  `bson:"reward_id,omitempty" json:"reward_id,omitempty"`

	Status             AppointmentStatus `bson:"status" json:"status"`
	CancellationReason string            `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	RefundAmount       float64           `bson:"refund_amount,omitempty" json:"refund_amount,omitempty"`
	ReservationToken   string            `bson:"reservation_token" json:"-"`
	Notes              string            `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	ConfirmedAt *time.Time `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// StartsAt resolves the appointment's wall-clock start in the given location.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", a.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(a.StartMinute) * time.Minute), nil
}

// AppointmentEvent is emitted on every status transition for the
// reporting/notification collaborators. Delivery is fire-and-forget.
type AppointmentEvent struct {
	AppointmentID string            `json:"appointment_id"`
	From          AppointmentStatus `json:"from"`
	To            AppointmentStatus `json:"to"`
	Actor         ActorRole         `json:"actor"`
	At            time.Time         `json:"at"`
}
