package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appointmentRepo "salonbook/database/repository/appointment"
	"salonbook/middleware"
	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/utils"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// ListSlots returns the bookable start times for a service on a date.
func (h *BookingHandler) ListSlots(c *gin.Context) {
	serviceID := c.Query("service_id")
	date := c.Query("date")
	if serviceID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "service_id and date are required")
		return
	}

	slots, err := h.Service.ListSlots(c.Request.Context(), serviceID, c.Query("staff_id"), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CreateBooking runs the full booking orchestration.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.Book(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetAppointment fetches a single appointment.
func (h *BookingHandler) GetAppointment(c *gin.Context) {
	appt, err := h.Service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListCustomerAppointments lists a customer's appointment history.
func (h *BookingHandler) ListCustomerAppointments(c *gin.Context) {
	appts, err := h.Service.ListCustomerAppointments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListStaffDay lists a staff member's appointments for one date.
func (h *BookingHandler) ListStaffDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date is required")
		return
	}
	appts, err := h.Service.ListStaffDay(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

type transitionInput struct {
	Reason string `json:"reason,omitempty"`
}

// TransitionAppointment applies one status transition on behalf of the
// actor identified by the role middleware.
func (h *BookingHandler) TransitionAppointment(target models.AppointmentStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input transitionInput
		// The body is optional; only cancellations usually carry a reason.
		_ = c.ShouldBindJSON(&input)

		appt, err := h.Service.Transition(
			c.Request.Context(),
			c.Param("id"),
			target,
			middleware.GetActorRole(c),
			input.Reason,
		)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// PaymentCallback is the gateway-facing webhook mapping payment
// results onto the state machine.
func (h *BookingHandler) PaymentCallback(c *gin.Context) {
	var res models.PaymentResult
	if err := c.ShouldBindJSON(&res); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.HandlePaymentResult(c.Request.Context(), res); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps engine errors onto HTTP statuses. Slot conflicts
// and illegal transitions are expected outcomes, not server faults.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var ve *booking.ValidationError
	var ite *booking.InvalidTransitionError
	var pie *booking.PaymentInitiationError

	switch {
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, "validation failed", ve.Error())
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", "the requested slot is no longer available; re-fetch slots and retry")
	case errors.As(err, &ite):
		utils.JSONError(c, http.StatusConflict, "invalid transition", ite.Error())
	case errors.As(err, &pie):
		utils.JSONError(c, http.StatusBadGateway, "payment initiation failed", pie.Error())
	case errors.Is(err, appointmentRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, booking.ErrPricingInvariant):
		h.Logger.Error("pricing invariant violation surfaced to handler", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "pricing invariant violated")
	default:
		h.Logger.Error("booking request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
