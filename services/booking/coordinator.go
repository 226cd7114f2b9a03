package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	calendarRepo "salonbook/database/repository/calendar"
	directoryRepo "salonbook/database/repository/directory"
	rewardRepo "salonbook/database/repository/reward"
	"salonbook/models"
	"salonbook/utils"
)

// Book orchestrates a single booking request: validate, reserve the
// slot atomically, compose the price, create the pending appointment,
// consume the reward and hand off to the payment gateway. Every step
// after the reservation carries a compensating action so the calendar
// reservation, the appointment and the reward consumption commit or
// roll back together.
func (s *DefaultBookingService) Book(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()
	now := s.now()

	svc, pm, reward, err := s.validateRequest(ctx, req, now)
	if err != nil {
		return nil, err
	}

	// Reserve before anything observable: the calendar index is the
	// sole arbiter, and losing the race here is an expected outcome.
	token, staffID, err := s.reserveSlot(ctx, svc, req)
	if err != nil {
		return nil, err
	}

	rewardAmount := 0.0
	if reward != nil {
		rewardAmount = reward.Amount
	}
	quote, err := ComposePrice(svc.BasePrice, svc.Promotion, rewardAmount, *pm, now)
	if err != nil {
		s.releaseQuietly(ctx, token)
		return nil, err
	}

	appt := &models.Appointment{
		ID:                 uuid.New().String(),
		TenantID:           svc.TenantID,
		ServiceID:          svc.ID,
		ServiceName:        svc.Name,
		BasePrice:          svc.BasePrice,
		DurationMinutes:    svc.DurationMinutes,
		BufferAfterMinutes: svc.BufferAfterMinutes,
		StaffID:            staffID,
		CustomerID:         req.CustomerID,
		Date:               req.Date,
		StartMinute:        req.StartMinute,
		FinalPrice:         quote.Total.InexactFloat64(),
		Subtotal:           quote.Subtotal.InexactFloat64(),
		Discount:           quote.Discount.InexactFloat64(),
		ProcessingFee:      quote.Fee.InexactFloat64(),
		PaymentMethodID:    pm.ID,
		RewardID:           req.RewardID,
		Status:             models.StatusPending,
		ReservationToken:   token,
		Notes:              req.Notes,
		CreatedAt:          now,
	}

	if err := s.Appointments.Create(ctx, appt); err != nil {
		s.releaseQuietly(ctx, token)
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if reward != nil {
		if err := s.Rewards.Consume(ctx, reward.ID, appt.ID); err != nil {
			s.rollbackBooking(ctx, appt, "reward no longer available")
			if errors.Is(err, rewardRepo.ErrNotAvailable) {
				return nil, NewValidationError("reward_id", "reward is no longer available")
			}
			return nil, fmt.Errorf("failed to consume reward: %w", err)
		}
	}

	if staffID != "" {
		if err := s.Directory.TouchStaffBooked(ctx, staffID, now); err != nil {
			logger.Warn("failed to record staff assignment", zap.Error(err))
		}
	}

	s.emit(ctx, appt.ID, "", models.StatusPending, models.RoleSystem)

	// Hand off to the gateway under a bounded timeout; a timeout is a
	// failure requiring full rollback, never an indefinitely pending
	// appointment.
	payCtx, cancel := context.WithTimeout(ctx, s.PaymentTimeout)
	defer cancel()

	init, err := s.Gateway.Initialize(payCtx, models.PaymentRequest{
		AppointmentID: appt.ID,
		CustomerID:    req.CustomerID,
		Amount:        appt.FinalPrice,
		Method:        pm.Kind,
		Reference:     req.Reference,
	})
	if err != nil {
		logger.Warn("payment initiation failed, rolling back booking",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		s.rollbackBooking(ctx, appt, "payment initiation failed")
		return nil, &PaymentInitiationError{Cause: err}
	}

	if init.Confirmed {
		confirmed, err := s.Transition(ctx, appt.ID, models.StatusConfirmed, models.RoleSystem, "")
		if err != nil {
			return nil, fmt.Errorf("failed to confirm appointment: %w", err)
		}
		return &models.BookingResult{Appointment: confirmed}, nil
	}

	// Asynchronous confirmation: stay pending until the callback.
	return &models.BookingResult{Appointment: appt, RedirectURL: init.RedirectURL}, nil
}

// validateRequest rejects malformed input before any side effect and
// returns the request-time snapshots the rest of the booking uses.
func (s *DefaultBookingService) validateRequest(ctx context.Context, req models.BookingRequest, now time.Time) (*models.Service, *models.PaymentMethod, *models.Reward, error) {
	day, err := time.ParseInLocation("2006-01-02", req.Date, now.Location())
	if err != nil {
		return nil, nil, nil, NewValidationError("date", "must be formatted as YYYY-MM-DD")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, nil, nil, NewValidationError("date", "must not be in the past")
	}

	hours := s.Resolver.Hours
	if req.StartMinute < hours.OpenMinute || (req.StartMinute-hours.OpenMinute)%hours.Granularity != 0 {
		return nil, nil, nil, NewValidationError("start_minute", "not on a valid slot boundary")
	}
	if day.Equal(today) && req.StartMinute < now.Hour()*60+now.Minute() {
		return nil, nil, nil, NewValidationError("start_minute", "must not be in the past")
	}

	svc, err := s.Directory.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrServiceNotFound) {
			return nil, nil, nil, NewValidationError("service_id", "unknown service")
		}
		return nil, nil, nil, err
	}
	if !svc.Active {
		return nil, nil, nil, NewValidationError("service_id", "service is not active")
	}
	if req.StartMinute+svc.DurationMinutes > hours.CloseMinute {
		return nil, nil, nil, NewValidationError("start_minute", "service does not fit before closing")
	}

	pm, err := s.Directory.GetPaymentMethodByID(ctx, req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrPaymentMethodNotFound) {
			return nil, nil, nil, NewValidationError("payment_method_id", "unknown payment method")
		}
		return nil, nil, nil, err
	}
	if !pm.Active {
		return nil, nil, nil, NewValidationError("payment_method_id", "payment method is not active")
	}
	if pm.RequiresReference && req.Reference == "" {
		return nil, nil, nil, NewValidationError("reference", "required by this payment method")
	}

	var reward *models.Reward
	if req.RewardID != "" {
		reward, err = s.Rewards.GetByID(ctx, req.RewardID)
		if err != nil {
			if errors.Is(err, rewardRepo.ErrNotFound) {
				return nil, nil, nil, NewValidationError("reward_id", "unknown reward")
			}
			return nil, nil, nil, err
		}
		if reward.CustomerID != req.CustomerID {
			return nil, nil, nil, NewValidationError("reward_id", "reward does not belong to requester")
		}
		if reward.Status != models.RewardAvailable {
			return nil, nil, nil, NewValidationError("reward_id", "reward is not available")
		}
		if reward.ExpiresAt != nil && reward.ExpiresAt.Before(now) {
			return nil, nil, nil, NewValidationError("reward_id", "reward has expired")
		}
	}

	return svc, pm, reward, nil
}

// reserveSlot re-validates the requested slot directly against the
// calendar index and commits the range. For an unspecified staff it
// walks eligible staff least-recently-booked first; losing every race
// surfaces as ErrSlotUnavailable, the caller's cue to re-list slots.
func (s *DefaultBookingService) reserveSlot(ctx context.Context, svc *models.Service, req models.BookingRequest) (token, staffID string, err error) {
	committed := svc.CommittedMinutes()

	if req.StaffID != "" {
		st, err := s.Directory.GetStaffByID(ctx, req.StaffID)
		if err != nil {
			if errors.Is(err, directoryRepo.ErrStaffNotFound) {
				return "", "", NewValidationError("staff_id", "unknown staff member")
			}
			return "", "", err
		}
		if !st.Active || !st.EligibleFor(svc.ID) {
			return "", "", NewValidationError("staff_id", "staff member is not eligible for this service")
		}
		token, err := s.Calendar.Reserve(ctx, st.ID, req.Date, req.StartMinute, committed)
		if errors.Is(err, calendarRepo.ErrConflict) {
			return "", "", ErrSlotUnavailable
		}
		if err != nil {
			return "", "", fmt.Errorf("reservation failed: %w", err)
		}
		return token, st.ID, nil
	}

	if !svc.RequiresStaff {
		token, err := s.Calendar.Reserve(ctx, tenantTrack(svc), req.Date, req.StartMinute, committed)
		if errors.Is(err, calendarRepo.ErrConflict) {
			return "", "", ErrSlotUnavailable
		}
		if err != nil {
			return "", "", fmt.Errorf("reservation failed: %w", err)
		}
		return token, "", nil
	}

	staff, err := s.Directory.EligibleStaff(ctx, svc.ID)
	if err != nil {
		return "", "", err
	}
	for _, st := range staff {
		token, err := s.Calendar.Reserve(ctx, st.ID, req.Date, req.StartMinute, committed)
		if errors.Is(err, calendarRepo.ErrConflict) {
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("reservation failed: %w", err)
		}
		return token, st.ID, nil
	}
	return "", "", ErrSlotUnavailable
}

// rollbackBooking drives the freshly created pending appointment to
// cancelled, which releases the reservation and reverses the reward.
func (s *DefaultBookingService) rollbackBooking(ctx context.Context, appt *models.Appointment, reason string) {
	if _, err := s.Transition(ctx, appt.ID, models.StatusCancelled, models.RoleSystem, reason); err != nil {
		// The sweep will catch anything left behind; log loudly.
		utils.GetLogger().Error("booking rollback failed",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) releaseQuietly(ctx context.Context, token string) {
	if err := s.Calendar.Release(ctx, token); err != nil {
		utils.GetLogger().Error("failed to release reservation", zap.String("token", token), zap.Error(err))
	}
}

func (s *DefaultBookingService) emit(ctx context.Context, apptID string, from, to models.AppointmentStatus, actor models.ActorRole) {
	if s.Emitter == nil {
		return
	}
	s.Emitter.Emit(ctx, models.AppointmentEvent{
		AppointmentID: apptID,
		From:          from,
		To:            to,
		Actor:         actor,
		At:            s.now(),
	})
}
