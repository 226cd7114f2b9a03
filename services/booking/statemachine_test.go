package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salonbook/models"
)

func TestCanTransition_TerminalStatesHaveNoOutboundEdges(t *testing.T) {
	terminals := []models.AppointmentStatus{
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow,
	}
	targets := []models.AppointmentStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow,
	}
	roles := []models.ActorRole{
		models.RoleCustomer, models.RoleStaff, models.RoleAdmin, models.RoleSystem,
	}

	for _, from := range terminals {
		for _, to := range targets {
			for _, role := range roles {
				assert.False(t, CanTransition(from, to, role),
					"%s -> %s should be rejected for %s", from, to, role)
			}
		}
	}
}

func TestCanTransition_RoleGating(t *testing.T) {
	tests := []struct {
		name string
		from models.AppointmentStatus
		to   models.AppointmentStatus
		role models.ActorRole
		want bool
	}{
		{"system confirms pending", models.StatusPending, models.StatusConfirmed, models.RoleSystem, true},
		{"customer cannot confirm", models.StatusPending, models.StatusConfirmed, models.RoleCustomer, false},
		{"customer cancels pending", models.StatusPending, models.StatusCancelled, models.RoleCustomer, true},
		{"customer cancels confirmed", models.StatusConfirmed, models.StatusCancelled, models.RoleCustomer, true},
		{"customer cannot cancel in progress", models.StatusInProgress, models.StatusCancelled, models.RoleCustomer, false},
		{"staff starts confirmed", models.StatusConfirmed, models.StatusInProgress, models.RoleStaff, true},
		{"customer cannot start", models.StatusConfirmed, models.StatusInProgress, models.RoleCustomer, false},
		{"staff completes in progress", models.StatusInProgress, models.StatusCompleted, models.RoleStaff, true},
		{"staff marks confirmed no-show", models.StatusConfirmed, models.StatusNoShow, models.RoleStaff, true},
		{"customer cannot mark no-show", models.StatusConfirmed, models.StatusNoShow, models.RoleCustomer, false},
		{"no skipping pending to in progress", models.StatusPending, models.StatusInProgress, models.RoleAdmin, false},
		{"no skipping pending to completed", models.StatusPending, models.StatusCompleted, models.RoleAdmin, false},
		{"no reviving via pending", models.StatusConfirmed, models.StatusPending, models.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to, tt.role))
		})
	}
}

func TestCheckTransition_ErrorIdentifiesStates(t *testing.T) {
	err := checkTransition(models.StatusCompleted, models.StatusCancelled, models.RoleAdmin)

	ite, ok := err.(*InvalidTransitionError)
	if assert.True(t, ok, "expected InvalidTransitionError, got %v", err) {
		assert.Equal(t, models.StatusCompleted, ite.Current)
		assert.Equal(t, models.StatusCancelled, ite.Requested)
		assert.Equal(t, models.RoleAdmin, ite.Role)
	}
}
