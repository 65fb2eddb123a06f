package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ninjaservices/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentHandler processes a checkout payment and returns the invoice.
type PaymentHandler interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// StripePaymentHandler charges the user's payment method through Stripe.
type StripePaymentHandler struct {
	logger *zap.Logger
}

func NewPaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{logger: logger}
}

func (h *StripePaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if err := validatePaymentRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.Method),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	status := "pending"
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		status = "paid"
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    status,
		CreatedAt: time.Now(),
	}
	h.logger.Info("payment processed",
		zap.String("invoice", inv.InvoiceID),
		zap.String("paymentIntent", pi.ID),
		zap.String("status", status))
	return inv, nil
}

func validatePaymentRequest(req models.PaymentRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if req.UserID == "" {
		return errors.New("missing user ID")
	}
	if req.Method == "" {
		return errors.New("missing payment method")
	}
	if req.Currency == "" {
		return errors.New("missing currency")
	}
	return nil
}
