package models

import "time"

// DiscountKind is a closed enum of promotion discount types.
type DiscountKind string

const (
	DiscountPercentage  DiscountKind = "percentage"
	DiscountFixedAmount DiscountKind = "fixed_amount"
)

// Promotion is a time-bounded discount attached to exactly one service.
// At most one promotion may be active per service at a time.
type Promotion struct {
	ID         string       `bson:"id" json:"id"`
	ServiceID  string       `bson:"service_id" json:"service_id"`
	Kind       DiscountKind `bson:"kind" json:"kind"`
	Percentage  int          `bson:"percentage,omitempty" json:"percentage,omitempty"`     // 1-99, when Kind is percentage
	FixedAmount float64      `bson:"fixed_amount,omitempty" json:"fixed_amount,omitempty"` // amount off the base price, when Kind is fixed_amount
	StartsAt   time.Time    `bson:"starts_at" json:"starts_at"`
	EndsAt     time.Time    `bson:"ends_at" json:"ends_at"`
}

// ActiveAt reports whether the promotion window covers the given instant.
func (p *Promotion) ActiveAt(now time.Time) bool {
	if p == nil {
		return false
	}
	return !now.Before(p.StartsAt) && !now.After(p.EndsAt)
}

// Service represents a bookable salon service. The engine reads a
// snapshot at request time; later edits never alter historical
// appointments.
type Service struct {
	ID                 string     `bson:"id" json:"id"`
	TenantID           string     `bson:"tenant_id" json:"tenant_id"`
	Name               string     `bson:"name" json:"name"`
	BasePrice          float64    `bson:"base_price" json:"base_price"`
	DurationMinutes    int        `bson:"duration_minutes" json:"duration_minutes"`
	BufferAfterMinutes int        `bson:"buffer_after_minutes" json:"buffer_after_minutes"`
	RequiresStaff      bool       `bson:"requires_staff" json:"requires_staff"`
	Active             bool       `bson:"active" json:"active"`
	Promotion          *Promotion `bson:"promotion,omitempty" json:"promotion,omitempty"`
}

// CommittedMinutes is the span a booking of this service occupies on
// the calendar: the service duration plus the buffer-after time.
func (s *Service) CommittedMinutes() int {
	return s.DurationMinutes + s.BufferAfterMinutes
}
