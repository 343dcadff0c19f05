package commands

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/usecase/shared"
)

// DirectCharger bills an owner-approved booking by charging the payment
// method the tenant supplied at booking time. No invoice is created; the
// booking is settled by payment_intent events instead.
type DirectCharger struct {
	gateway ChargeGateway
	logger  *slog.Logger
}

var _ Biller = (*DirectCharger)(nil)

func NewDirectCharger(gateway ChargeGateway, logger *slog.Logger) *DirectCharger {
	return &DirectCharger{
		gateway: gateway,
		logger:  logger,
	}
}

func (c *DirectCharger) Bill(ctx context.Context, users shared.UserRepository, b *booking.Booking, now time.Time) error {
	customerID, err := billingCustomer(ctx, users, b)
	if err != nil {
		return err
	}

	req := ChargeRequest{
		BookingID:       b.ID(),
		CustomerID:      customerID,
		PaymentMethodID: b.PaymentMethodID(),
		AmountCents:     b.Amount().Cents(),
		Description:     chargeDescription(b),
	}

	paymentIntentID, err := c.gateway.ChargeDirect(ctx, req)
	if err != nil {
		return externalFailure(err, "charge payment method")
	}

	c.logger.Info("booking charged",
		slog.String("booking_id", b.ID().String()),
		slog.String("payment_intent_id", paymentIntentID),
		slog.Int64("amount_cents", req.AmountCents))

	return b.AttachPaymentIntent(paymentIntentID, now)
}
