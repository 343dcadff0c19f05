package stripegw

import (
	"context"
	"fmt"
	"log/slog"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type invoiceItemBackend interface {
	New(params *stripe.InvoiceItemParams) (*stripe.InvoiceItem, error)
}

type invoiceBackend interface {
	New(params *stripe.InvoiceParams) (*stripe.Invoice, error)
	FinalizeInvoice(id string, params *stripe.InvoiceFinalizeInvoiceParams) (*stripe.Invoice, error)
	SendInvoice(id string, params *stripe.InvoiceSendInvoiceParams) (*stripe.Invoice, error)
	Update(id string, params *stripe.InvoiceParams) (*stripe.Invoice, error)
}

type paymentIntentBackend interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Gateway bills bookings through Stripe, either by invoice or by charging the
// saved payment method directly. Every mutating call carries an idempotency
// key derived from the booking and amount, so a retried approval replays the
// processor's earlier answers instead of billing twice.
type Gateway struct {
	items    invoiceItemBackend
	invoices invoiceBackend
	intents  paymentIntentBackend
	currency string
	logger   *slog.Logger
}

var (
	_ commands.InvoiceGateway = (*Gateway)(nil)
	_ commands.ChargeGateway  = (*Gateway)(nil)
)

func NewGateway(cfg config.StripeConfig, logger *slog.Logger) *Gateway {
	backendCfg := &stripe.BackendConfig{MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries)}
	sc := client.New(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})
	return newGateway(sc.InvoiceItems, sc.Invoices, sc.PaymentIntents, cfg.Currency, logger)
}

func newGateway(
	items invoiceItemBackend,
	invoices invoiceBackend,
	intents paymentIntentBackend,
	currency string,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		items:    items,
		invoices: invoices,
		intents:  intents,
		currency: currency,
		logger:   logger,
	}
}

func (g *Gateway) CreateInvoiceItem(ctx context.Context, req commands.InvoiceRequest) error {
	params := &stripe.InvoiceItemParams{
		Customer:    stripe.String(req.CustomerID),
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(g.currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey(req.BookingID, "item", req.AmountCents))
	params.AddMetadata("booking_id", req.BookingID.String())

	item, err := g.items.New(params)
	if err != nil {
		return err
	}
	g.logger.Debug("invoice item created", slog.String("booking_id", req.BookingID.String()), slog.String("item_id", item.ID))
	return nil
}

func (g *Gateway) CreateDraftInvoice(ctx context.Context, req commands.InvoiceRequest) (string, error) {
	params := &stripe.InvoiceParams{
		Customer:                    stripe.String(req.CustomerID),
		CollectionMethod:            stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:                stripe.Int64(0),
		AutoAdvance:                 stripe.Bool(false),
		PendingInvoiceItemsBehavior: stripe.String("include"),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey(req.BookingID, "draft", req.AmountCents))
	params.AddMetadata("booking_id", req.BookingID.String())

	inv, err := g.invoices.New(params)
	if err != nil {
		return "", err
	}
	return inv.ID, nil
}

func (g *Gateway) FinalizeInvoice(ctx context.Context, req commands.InvoiceRequest, invoiceID string) error {
	params := &stripe.InvoiceFinalizeInvoiceParams{}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey(req.BookingID, "finalize", req.AmountCents))

	_, err := g.invoices.FinalizeInvoice(invoiceID, params)
	return err
}

func (g *Gateway) SendInvoice(ctx context.Context, req commands.InvoiceRequest, invoiceID string) error {
	params := &stripe.InvoiceSendInvoiceParams{}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey(req.BookingID, "send", req.AmountCents))

	_, err := g.invoices.SendInvoice(invoiceID, params)
	return err
}

func (g *Gateway) KeepDraft(ctx context.Context, invoiceID string) error {
	params := &stripe.InvoiceParams{AutoAdvance: stripe.Bool(false)}
	params.Context = ctx
	params.SetIdempotencyKey("invoice-" + invoiceID + "-keep-draft")

	_, err := g.invoices.Update(invoiceID, params)
	return err
}

// ChargeDirect confirms an off-session payment intent against the tenant's
// saved payment method. Collection is reported later by payment_intent events.
func (g *Gateway) ChargeDirect(ctx context.Context, req commands.ChargeRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(g.currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Description:   stripe.String(req.Description),
		OffSession:    stripe.Bool(true),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey(req.BookingID, "charge", req.AmountCents))
	params.AddMetadata("booking_id", req.BookingID.String())

	pi, err := g.intents.New(params)
	if err != nil {
		return "", err
	}
	g.logger.Debug("payment intent confirmed",
		slog.String("booking_id", req.BookingID.String()),
		slog.String("payment_intent_id", pi.ID),
		slog.String("status", string(pi.Status)))
	return pi.ID, nil
}

// The amount is part of the key: a re-priced approval must not replay an old item.
func idempotencyKey(bookingID uuid.UUID, step string, amountCents int64) string {
	return fmt.Sprintf("booking-%s-%s-%d", bookingID, step, amountCents)
}
