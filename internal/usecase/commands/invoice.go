package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"
)

// Biller bills an owner-approved booking inside the approval transaction and
// records the processor reference on it. Any error rolls the approval back.
type Biller interface {
	Bill(ctx context.Context, users shared.UserRepository, b *booking.Booking, now time.Time) error
}

// InvoiceIssuer bills an owner-approved booking through the processor:
// line item, draft invoice, finalize, send.
type InvoiceIssuer struct {
	gateway InvoiceGateway
	logger  *slog.Logger
}

var _ Biller = (*InvoiceIssuer)(nil)

func NewInvoiceIssuer(gateway InvoiceGateway, logger *slog.Logger) *InvoiceIssuer {
	return &InvoiceIssuer{
		gateway: gateway,
		logger:  logger,
	}
}

func (i *InvoiceIssuer) Bill(ctx context.Context, users shared.UserRepository, b *booking.Booking, now time.Time) error {
	invoiceID, err := i.Issue(ctx, users, b)
	if err != nil {
		return err
	}
	return b.AttachInvoice(invoiceID, now)
}

func (i *InvoiceIssuer) Issue(ctx context.Context, users shared.UserRepository, b *booking.Booking) (string, error) {
	customerID, err := billingCustomer(ctx, users, b)
	if err != nil {
		return "", err
	}

	req := InvoiceRequest{
		BookingID:   b.ID(),
		CustomerID:  customerID,
		AmountCents: b.Amount().Cents(),
		Description: chargeDescription(b),
	}

	if err := i.gateway.CreateInvoiceItem(ctx, req); err != nil {
		return "", externalFailure(err, "create invoice item")
	}

	invoiceID, err := i.gateway.CreateDraftInvoice(ctx, req)
	if err != nil {
		return "", externalFailure(err, "create draft invoice")
	}

	if err := i.gateway.FinalizeInvoice(ctx, req, invoiceID); err != nil {
		return "", externalFailure(err, "finalize invoice "+invoiceID)
	}

	if err := i.gateway.SendInvoice(ctx, req, invoiceID); err != nil {
		return "", externalFailure(err, "send invoice "+invoiceID)
	}

	i.logger.Info("invoice issued",
		slog.String("booking_id", b.ID().String()),
		slog.String("invoice_id", invoiceID),
		slog.Int64("amount_cents", req.AmountCents))

	return invoiceID, nil
}

// billingCustomer resolves the tenant's processor customer id.
func billingCustomer(ctx context.Context, users shared.UserRepository, b *booking.Booking) (string, error) {
	tenant, err := users.FindByID(ctx, b.TenantID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", errs.Mark(err, errs.ErrBillingIdentityMissing)
		}
		return "", err
	}

	customerID, ok := tenant.BillingCustomerID()
	if !ok {
		return "", errs.ErrBillingIdentityMissing
	}
	return customerID, nil
}

func chargeDescription(b *booking.Booking) string {
	return fmt.Sprintf("Apartment booking %s %s", b.ID(), b.Dates())
}

func externalFailure(err error, step string) error {
	return errs.Mark(errs.Wrap(err, step), errs.ErrExternalServiceFailure)
}
