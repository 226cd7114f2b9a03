package models

import "time"

// RewardStatus tracks the lifecycle of a customer reward credit.
type RewardStatus string

const (
	RewardAvailable RewardStatus = "available"
	RewardUsed      RewardStatus = "used"
	RewardExpired   RewardStatus = "expired"
)

// Reward is a customer-owned credit redeemable against exactly one
// booking. It moves available -> used atomically with the appointment
// it discounts, and is never partially consumed.
type Reward struct {
	ID            string       `bson:"id" json:"id"`
	CustomerID    string       `bson:"customer_id" json:"customer_id"`
	Amount        float64      `bson:"amount" json:"amount"`
	Status        RewardStatus `bson:"status" json:"status"`
	ExpiresAt     *time.Time   `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	AppointmentID string       `bson:"appointment_id,omitempty" json:"appointment_id,omitempty"` // set while linked to a non-cancelled appointment
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
}
