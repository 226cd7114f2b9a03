package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salonbook/models"
)

func testPolicy() CancellationPolicy {
	return CancellationPolicy{FullRefundHours: 24, PartialRefundHours: 2, PartialRefundPct: 50}
}

func apptStartingAt(t *testing.T, start time.Time, paid float64) *models.Appointment {
	t.Helper()
	return &models.Appointment{
		Date:        start.Format("2006-01-02"),
		StartMinute: start.Hour()*60 + start.Minute(),
		FinalPrice:  paid,
		Status:      models.StatusConfirmed,
	}
}

func TestCancellationPolicy_CustomerWindows(t *testing.T) {
	policy := testPolicy()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("more than 24h out refunds in full", func(t *testing.T) {
		appt := apptStartingAt(t, now.Add(30*time.Hour), 120)
		out := policy.Evaluate(appt, models.RoleCustomer, now)
		assert.True(t, out.Full)
		assert.Equal(t, "120", out.Amount.String())
	})

	t.Run("exactly 24h out refunds in full", func(t *testing.T) {
		appt := apptStartingAt(t, now.Add(24*time.Hour), 120)
		out := policy.Evaluate(appt, models.RoleCustomer, now)
		assert.True(t, out.Full)
		assert.Equal(t, "120", out.Amount.String())
	})

	t.Run("between 2h and 24h refunds the partial percentage", func(t *testing.T) {
		appt := apptStartingAt(t, now.Add(5*time.Hour), 120)
		out := policy.Evaluate(appt, models.RoleCustomer, now)
		assert.False(t, out.Full)
		assert.Equal(t, "60", out.Amount.String())
	})

	t.Run("under 2h refunds nothing", func(t *testing.T) {
		appt := apptStartingAt(t, now.Add(time.Hour), 120)
		out := policy.Evaluate(appt, models.RoleCustomer, now)
		assert.False(t, out.Full)
		assert.True(t, out.Amount.IsZero())
	})
}

func TestCancellationPolicy_StaffAlwaysFull(t *testing.T) {
	policy := testPolicy()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appt := apptStartingAt(t, now.Add(10*time.Minute), 85.5)

	for _, role := range []models.ActorRole{models.RoleStaff, models.RoleAdmin, models.RoleSystem} {
		out := policy.Evaluate(appt, role, now)
		assert.True(t, out.Full, "role %s should refund in full", role)
		assert.Equal(t, "85.5", out.Amount.String())
	}
}

func TestCancellationPolicy_BadDateRefusesRefund(t *testing.T) {
	policy := testPolicy()
	appt := &models.Appointment{Date: "not-a-date", StartMinute: 600, FinalPrice: 100}

	out := policy.Evaluate(appt, models.RoleCustomer, time.Now())
	assert.False(t, out.Full)
	assert.True(t, out.Amount.IsZero())
}
