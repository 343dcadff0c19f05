package stripegw

import (
	"encoding/json"
	"fmt"

	"rental-booking/internal/domain/payment"
	"rental-booking/internal/usecase/commands"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Decoder verifies Stripe webhook signatures and narrows events to the
// payment.Event variants the reconciler understands.
type Decoder struct {
	secret string
}

var _ commands.EventDecoder = (*Decoder)(nil)

func NewDecoder(webhookSecret string) *Decoder {
	return &Decoder{secret: webhookSecret}
}

func (d *Decoder) Verify(payload []byte, signature string) (payment.Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, d.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}
	return narrow(ev)
}

func (d *Decoder) Decode(payload []byte) (payment.Event, error) {
	var ev stripe.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("decode stripe event: %w", err)
	}
	return narrow(ev)
}

// narrow unmarshals the event object into the stripe-go resource type, which
// accepts both the bare id and the expanded form for nested references.
func narrow(ev stripe.Event) (payment.Event, error) {
	meta := payment.Meta{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data == nil {
		return payment.Unrecognized{Meta: meta}, nil
	}
	raw := ev.Data.Raw

	switch ev.Type {
	case stripe.EventTypeInvoicePaid, stripe.EventTypeInvoicePaymentFailed, stripe.EventTypeInvoiceCreated:
		var inv stripe.Invoice
		if err := json.Unmarshal(raw, &inv); err != nil {
			return nil, fmt.Errorf("decode invoice in %s: %w", ev.Type, err)
		}
		switch ev.Type {
		case stripe.EventTypeInvoicePaid:
			return payment.InvoicePaid{Meta: meta, InvoiceID: inv.ID}, nil
		case stripe.EventTypeInvoicePaymentFailed:
			return payment.InvoicePaymentFailed{Meta: meta, InvoiceID: inv.ID}, nil
		default:
			return payment.InvoiceCreated{Meta: meta, InvoiceID: inv.ID, Draft: inv.Status == stripe.InvoiceStatusDraft}, nil
		}

	case stripe.EventTypePaymentIntentSucceeded, stripe.EventTypePaymentIntentPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment intent in %s: %w", ev.Type, err)
		}
		if ev.Type == stripe.EventTypePaymentIntentSucceeded {
			return payment.PaymentIntentSucceeded{Meta: meta, PaymentIntentID: pi.ID}, nil
		}
		return payment.PaymentIntentFailed{Meta: meta, PaymentIntentID: pi.ID}, nil

	case stripe.EventTypeCustomerSubscriptionCreated,
		stripe.EventTypeCustomerSubscriptionUpdated,
		stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription in %s: %w", ev.Type, err)
		}
		changed := payment.SubscriptionStatusChanged{
			Meta:           meta,
			SubscriptionID: sub.ID,
			Status:         string(sub.Status),
		}
		if sub.LatestInvoice != nil {
			changed.LatestInvoiceID = sub.LatestInvoice.ID
		}
		return changed, nil

	default:
		return payment.Unrecognized{Meta: meta}, nil
	}
}
