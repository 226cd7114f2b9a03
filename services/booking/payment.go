package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"salonbook/models"
)

// PaymentGateway is the external collaborator that collects the money.
// Initialize either settles synchronously (cash), hands back a
// redirect for asynchronous confirmation (card), or fails; the actual
// transaction processing is outside this engine.
type PaymentGateway interface {
	Initialize(ctx context.Context, req models.PaymentRequest) (*models.PaymentInit, error)
}

// UnifiedPaymentGateway routes by payment method kind: cash confirms
// on booking, card goes through a Stripe PaymentIntent and confirms
// later via the gateway callback.
type UnifiedPaymentGateway struct {
	logger *zap.Logger
}

func NewPaymentGateway(logger *zap.Logger) *UnifiedPaymentGateway {
	return &UnifiedPaymentGateway{logger: logger}
}

func (g *UnifiedPaymentGateway) Initialize(ctx context.Context, req models.PaymentRequest) (*models.PaymentInit, error) {
	if err := validatePaymentRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	switch req.Method {
	case models.PaymentKindCash:
		// Cash is confirmed-on-booking; marking it paid is a separate
		// staff-driven flag outside the status machine.
		g.logger.Info("Cash payment recorded",
			zap.String("appointmentID", req.AppointmentID))
		return &models.PaymentInit{Confirmed: true}, nil
	case models.PaymentKindCard:
		return g.initializeCardPayment(ctx, req)
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

func (g *UnifiedPaymentGateway) initializeCardPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentInit, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.AddMetadata("appointment_id", req.AppointmentID)
	params.AddMetadata("customer_id", req.CustomerID)
	if req.Reference != "" {
		params.AddMetadata("reference", req.Reference)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}

	init := &models.PaymentInit{Reference: pi.ID}
	if pi.NextAction != nil && pi.NextAction.RedirectToURL != nil {
		init.RedirectURL = pi.NextAction.RedirectToURL.URL
	}

	g.logger.Info("Card payment initialized",
		zap.String("appointmentID", req.AppointmentID),
		zap.String("paymentIntent", pi.ID))
	return init, nil
}

func validatePaymentRequest(req models.PaymentRequest) error {
	if req.Amount < 0 {
		return errors.New("invalid payment amount")
	}
	if req.CustomerID == "" {
		return errors.New("missing customer ID")
	}
	if req.AppointmentID == "" {
		return errors.New("missing appointment reference")
	}
	return nil
}
