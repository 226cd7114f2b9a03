package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"salonbook/models"
)

// CancellationPolicy decides refund eligibility and amount when a
// transition to cancelled is requested. Staff and admin cancellations
// always refund in full; customer cancellations are window-based
// relative to the appointment start. No-shows never refund.
type CancellationPolicy struct {
	FullRefundHours    int // full refund at or beyond this many hours before start
	PartialRefundHours int // partial refund between this and FullRefundHours
	PartialRefundPct   int
}

// RefundOutcome is the policy's verdict for one cancellation.
type RefundOutcome struct {
	Amount decimal.Decimal
	Full   bool
}

// Evaluate computes the refund for cancelling the appointment at the
// given instant. The paid amount is the appointment's final price.
func (p CancellationPolicy) Evaluate(appt *models.Appointment, role models.ActorRole, now time.Time) RefundOutcome {
	paid := decimal.NewFromFloat(appt.FinalPrice)

	if role == models.RoleStaff || role == models.RoleAdmin || role == models.RoleSystem {
		return RefundOutcome{Amount: paid, Full: true}
	}

	start, err := appt.StartsAt(now.Location())
	if err != nil {
		// Unparseable date snapshot: refuse a refund rather than guess.
		return RefundOutcome{Amount: decimal.Zero}
	}

	lead := start.Sub(now)
	switch {
	case lead >= time.Duration(p.FullRefundHours)*time.Hour:
		return RefundOutcome{Amount: paid, Full: true}
	case lead >= time.Duration(p.PartialRefundHours)*time.Hour:
		pct := decimal.NewFromInt(int64(p.PartialRefundPct))
		return RefundOutcome{Amount: paid.Mul(pct).Div(hundred).Round(2)}
	default:
		return RefundOutcome{Amount: decimal.Zero}
	}
}
