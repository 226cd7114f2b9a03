package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/models"
	"salonbook/utils"
)

// Transition applies one role-gated status change. The swap itself is
// compare-and-swap on the stored status, so two racing transitions on
// the same appointment resolve to exactly one winner; the loser gets
// an InvalidTransitionError reflecting the state it actually raced
// against. Side effects (reservation release, reward reversal, refund
// policy, event emission) run only after the swap lands.
func (s *DefaultBookingService) Transition(ctx context.Context, appointmentID string, to models.AppointmentStatus, role models.ActorRole, reason string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	from := appt.Status

	if err := checkTransition(from, to, role); err != nil {
		return nil, err
	}

	now := s.now()
	set := map[string]interface{}{}
	refundFull := false

	switch to {
	case models.StatusConfirmed:
		set["confirmed_at"] = now
	case models.StatusCompleted:
		set["completed_at"] = now
	case models.StatusCancelled:
		set["cancelled_at"] = now
		if reason != "" {
			set["cancellation_reason"] = reason
		}
		if from == models.StatusConfirmed || from == models.StatusInProgress {
			outcome := s.Policy.Evaluate(appt, role, now)
			set["refund_amount"] = outcome.Amount.InexactFloat64()
			refundFull = outcome.Full
		}
	case models.StatusNoShow:
		// No refund, ever.
	}

	if err := s.Appointments.UpdateStatus(ctx, appointmentID, from, to, set); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			if current, ferr := s.Appointments.GetByID(ctx, appointmentID); ferr == nil {
				return nil, &InvalidTransitionError{Current: current.Status, Requested: to, Role: role}
			}
			return nil, &InvalidTransitionError{Current: from, Requested: to, Role: role}
		}
		return nil, err
	}

	s.applyTransitionEffects(ctx, appt, from, to, refundFull)
	s.emit(ctx, appointmentID, from, to, role)

	updated, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload appointment after transition: %w", err)
	}
	return updated, nil
}

func (s *DefaultBookingService) applyTransitionEffects(ctx context.Context, appt *models.Appointment, from, to models.AppointmentStatus, refundFull bool) {
	logger := utils.GetLogger()

	if to != models.StatusCancelled && to != models.StatusNoShow {
		return
	}

	// Free the committed range for re-booking. Release is idempotent.
	s.releaseQuietly(ctx, appt.ReservationToken)

	if to != models.StatusCancelled || appt.RewardID == "" {
		return
	}

	// Reward reversal: always on pending cancellation (nothing was
	// delivered), otherwise only when the refund is full.
	if from == models.StatusPending || refundFull {
		if err := s.Rewards.Revert(ctx, appt.RewardID, appt.ID); err != nil {
			logger.Error("failed to revert reward on cancellation",
				zap.String("appointmentID", appt.ID),
				zap.String("rewardID", appt.RewardID),
				zap.Error(err))
		}
	}
}

// HandlePaymentResult maps the gateway's asynchronous callback onto
// the state machine. Gateways retry callbacks, so a result that finds
// the appointment already settled in the matching state is a no-op.
func (s *DefaultBookingService) HandlePaymentResult(ctx context.Context, res models.PaymentResult) error {
	target := models.StatusCancelled
	reason := "payment failed"
	if res.Success {
		target = models.StatusConfirmed
		reason = ""
	}

	_, err := s.Transition(ctx, res.AppointmentID, target, models.RoleSystem, reason)
	if err != nil {
		var ite *InvalidTransitionError
		if errors.As(err, &ite) && ite.Current == target {
			return nil // duplicate callback
		}
		return err
	}
	return nil
}

// ExpireStalePending cancels pending appointments whose payment grace
// period has elapsed, through the same transition entrypoint every
// other caller uses. Returns the number of appointments cancelled.
func (s *DefaultBookingService) ExpireStalePending(ctx context.Context) (int, error) {
	logger := utils.GetLogger()
	cutoff := s.now().Add(-s.PendingGrace)

	stale, err := s.Appointments.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale pending appointments: %w", err)
	}

	expired := 0
	for _, appt := range stale {
		if _, err := s.Transition(ctx, appt.ID, models.StatusCancelled, models.RoleSystem, "payment confirmation grace period elapsed"); err != nil {
			// A concurrent confirmation beat the sweep; that's fine.
			var ite *InvalidTransitionError
			if errors.As(err, &ite) {
				continue
			}
			logger.Error("failed to expire pending appointment",
				zap.String("appointmentID", appt.ID), zap.Error(err))
			continue
		}
		expired++
	}

	if expired > 0 {
		logger.Info("expired stale pending appointments", zap.Int("count", expired))
	}
	return expired, nil
}
