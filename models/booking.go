package models

// BookingRequest is the input to the booking coordinator.
type BookingRequest struct {
	ServiceID       string `json:"service_id" binding:"required"`
	Date            string `json:"date" binding:"required"` // "2006-01-02"
	StartMinute     int    `json:"start_minute"`
	StaffID         string `json:"staff_id,omitempty"` // empty means any eligible staff
	RewardID        string `json:"reward_id,omitempty"`
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	CustomerID      string `json:"customer_id" binding:"required"`
	Reference       string `json:"reference,omitempty"` // required by some payment methods
	Notes           string `json:"notes,omitempty"`
}

// BookingResult is what a successful booking returns to the caller.
// RedirectURL is set when the payment method needs an asynchronous
// gateway confirmation; the appointment stays pending until then.
type BookingResult struct {
	Appointment *Appointment `json:"appointment"`
	RedirectURL string       `json:"redirect_url,omitempty"`
}
