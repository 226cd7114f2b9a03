package models

import "time"

// Staff represents a salon staff member eligible for zero or more services.
type Staff struct {
	ID             string    `bson:"id" json:"id"`
	TenantID       string    `bson:"tenant_id" json:"tenant_id"`
	Name           string    `bson:"name" json:"name"`
	Specialization string    `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Active         bool      `bson:"active" json:"active"`
	ServiceIDs     []string  `bson:"service_ids,omitempty" json:"service_ids,omitempty"`
	LastBookedAt   time.Time `bson:"last_booked_at,omitempty" json:"last_booked_at,omitempty"` // drives least-recently-booked assignment
}

// EligibleFor reports whether the staff member can perform the service.
func (s *Staff) EligibleFor(serviceID string) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
