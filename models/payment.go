package models

// PaymentMethodKind distinguishes gateway-routed methods from ones
// settled at the salon.
type PaymentMethodKind string

const (
	PaymentKindCard PaymentMethodKind = "card"
	PaymentKindCash PaymentMethodKind = "cash"
)

// PaymentMethod describes how a booking is paid and what processing
// fee it carries. The fee is computed on the post-discount amount,
// never on the base price.
type PaymentMethod struct {
	ID                string            `bson:"id" json:"id"`
	Name              string            `bson:"name" json:"name"`
	Kind              PaymentMethodKind `bson:"kind" json:"kind"`
	FeePercent        float64           `bson:"fee_percent" json:"fee_percent"`
	FeeFixed          float64           `bson:"fee_fixed" json:"fee_fixed"`
	RequiresReference bool              `bson:"requires_reference" json:"requires_reference"`
	Active            bool              `bson:"active" json:"active"`
}

// PaymentRequest is handed to the payment gateway collaborator.
type PaymentRequest struct {
	AppointmentID string
	CustomerID    string
	Amount        float64
	Method        PaymentMethodKind
	Reference     string
}

// PaymentInit is the gateway's synchronous answer to an initialization
// request. Confirmed means the method settled immediately (cash);
// otherwise the appointment stays pending until the callback arrives.
type PaymentInit struct {
	Confirmed   bool   `json:"confirmed"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Reference   string `json:"reference,omitempty"`
}

// PaymentResult is the asynchronous callback payload delivered by the
// gateway once a redirect-based payment settles or fails.
type PaymentResult struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
	Success       bool   `json:"success"`
	Reference     string `json:"reference,omitempty"`
}
