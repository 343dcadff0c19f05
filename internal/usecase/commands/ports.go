package commands

import (
	"context"

	"rental-booking/internal/domain/payment"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports_mock.go -package=commandsmock

// InvoiceRequest is what the processor needs to bill one booking.
type InvoiceRequest struct {
	BookingID   uuid.UUID
	CustomerID  string
	AmountCents int64
	Description string
}

// InvoiceGateway is the payment processor's invoicing surface. Implementations
// must make every call safe to repeat for the same request.
type InvoiceGateway interface {
	CreateInvoiceItem(ctx context.Context, req InvoiceRequest) error
	CreateDraftInvoice(ctx context.Context, req InvoiceRequest) (string, error)
	FinalizeInvoice(ctx context.Context, req InvoiceRequest, invoiceID string) error
	SendInvoice(ctx context.Context, req InvoiceRequest, invoiceID string) error
	// KeepDraft stops the processor from finalizing an invoice on its own.
	KeepDraft(ctx context.Context, invoiceID string) error
}

// ChargeRequest bills one booking against the tenant's saved payment method.
type ChargeRequest struct {
	BookingID       uuid.UUID
	CustomerID      string
	PaymentMethodID string
	AmountCents     int64
	Description     string
}

// ChargeGateway is the processor's direct-charge surface. ChargeDirect returns
// the payment intent id whose events later settle the booking.
type ChargeGateway interface {
	ChargeDirect(ctx context.Context, req ChargeRequest) (string, error)
}

// EventDecoder turns processor payloads into payment events.
type EventDecoder interface {
	// Verify checks the payload signature before decoding.
	Verify(payload []byte, signature string) (payment.Event, error)
	// Decode trusts the payload; use it only for payloads verified upstream.
	Decode(payload []byte) (payment.Event, error)
}

// EventSink hands a verified event to whatever applies it.
type EventSink interface {
	Deliver(ctx context.Context, ev payment.Event, payload []byte) error
}

// EventDeduper remembers which processor event ids were already applied.
type EventDeduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Remember(ctx context.Context, eventID string) error
}

type NotificationPublisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}
