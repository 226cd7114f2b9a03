package booking

import (
	"salonbook/models"
)

// transition identifies one edge of the appointment state machine.
type transition struct {
	From models.AppointmentStatus
	To   models.AppointmentStatus
}

// allowedTransitions is the full role-gated transition table. Any
// (from, to, role) combination absent here is rejected with an
// InvalidTransitionError; terminal states have no outbound edges.
var allowedTransitions = map[transition][]models.ActorRole{
	{models.StatusPending, models.StatusConfirmed}: {
		models.RoleSystem, models.RoleStaff, models.RoleAdmin,
	},
	{models.StatusPending, models.StatusCancelled}: {
		models.RoleCustomer, models.RoleStaff, models.RoleAdmin, models.RoleSystem,
	},
	{models.StatusConfirmed, models.StatusInProgress}: {
		models.RoleStaff, models.RoleAdmin,
	},
	{models.StatusConfirmed, models.StatusCancelled}: {
		models.RoleCustomer, models.RoleStaff, models.RoleAdmin,
	},
	{models.StatusConfirmed, models.StatusNoShow}: {
		models.RoleStaff, models.RoleAdmin,
	},
	{models.StatusInProgress, models.StatusCompleted}: {
		models.RoleStaff, models.RoleAdmin,
	},
	{models.StatusInProgress, models.StatusCancelled}: {
		models.RoleStaff, models.RoleAdmin,
	},
	{models.StatusInProgress, models.StatusNoShow}: {
		models.RoleStaff, models.RoleAdmin,
	},
}

// CanTransition reports whether the given actor may move an
// appointment from one status to another.
func CanTransition(from, to models.AppointmentStatus, role models.ActorRole) bool {
	roles, ok := allowedTransitions[transition{From: from, To: to}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// checkTransition returns the typed rejection for an illegal edge.
func checkTransition(from, to models.AppointmentStatus, role models.ActorRole) error {
	if !CanTransition(from, to, role) {
		return &InvalidTransitionError{Current: from, Requested: to, Role: role}
	}
	return nil
}
