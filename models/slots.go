package models

// TimeSlot is a candidate bookable start time for a service on a given
// date. Slots are never persisted; they are recomputed per request
// from the calendar index, which stays the single source of truth for
// occupancy.
type TimeSlot struct {
	Date            string `json:"date"`
	StartMinute     int    `json:"start_minute"` // minutes from midnight (e.g., 540 for 9:00 AM)
	DurationMinutes int    `json:"duration_minutes"`
}

// Range is a half-open committed interval [StartMinute, EndMinute) on
// a staff member's calendar for one date.
type Range struct {
	StartMinute int `bson:"start_minute" json:"start_minute"`
	EndMinute   int `bson:"end_minute" json:"end_minute"`
}

// Overlaps reports whether two ranges share any minute.
func (r Range) Overlaps(o Range) bool {
	return r.StartMinute < o.EndMinute && o.StartMinute < r.EndMinute
}

// Reservation is a committed calendar range held by one appointment.
type Reservation struct {
	Token       string `bson:"token" json:"token"`
	StaffID     string `bson:"staff_id" json:"staff_id"`
	Date        string `bson:"date" json:"date"`
	StartMinute int    `bson:"start_minute" json:"start_minute"`
	EndMinute   int    `bson:"end_minute" json:"end_minute"`
}
