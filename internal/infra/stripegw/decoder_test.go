//go:build unit

package stripegw_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/payment"
	"rental-booking/internal/infra/stripegw"
	"rental-booking/tests/common/stripetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "whsec_test"

func TestDecoder_Verify(t *testing.T) {
	decoder := stripegw.NewDecoder(secret)
	payload := stripetest.EventPayload("evt_1", "invoice.paid", `{"id":"in_1","object":"invoice","status":"paid","payment_intent":"pi_1"}`)

	t.Run("valid signature", func(t *testing.T) {
		ev, err := decoder.Verify(payload, stripetest.SignatureHeader(secret, payload, time.Now()))
		require.NoError(t, err)

		paid, ok := ev.(payment.InvoicePaid)
		require.True(t, ok)
		assert.Equal(t, "evt_1", paid.EventID())
		assert.Equal(t, "in_1", paid.InvoiceID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := decoder.Verify(payload, stripetest.SignatureHeader("whsec_other", payload, time.Now()))
		assert.Error(t, err)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := stripetest.SignatureHeader(secret, payload, time.Now())
		tampered := stripetest.EventPayload("evt_1", "invoice.paid", `{"id":"in_2","object":"invoice","status":"paid"}`)
		_, err := decoder.Verify(tampered, header)
		assert.Error(t, err)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		_, err := decoder.Verify(payload, stripetest.SignatureHeader(secret, payload, time.Now().Add(-time.Hour)))
		assert.Error(t, err)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := decoder.Verify(payload, "")
		assert.Error(t, err)
	})
}

func TestDecoder_Decode(t *testing.T) {
	decoder := stripegw.NewDecoder(secret)

	cases := []struct {
		name     string
		typ      string
		object   string
		expected payment.Event
	}{
		{
			name:   "invoice payment failed with expanded intent",
			typ:    "invoice.payment_failed",
			object: `{"id":"in_1","status":"open","payment_intent":{"id":"pi_9","object":"payment_intent"}}`,
			expected: payment.InvoicePaymentFailed{
				Meta:      payment.Meta{ID: "evt_x", Type: "invoice.payment_failed"},
				InvoiceID: "in_1",
			},
		},
		{
			name:   "invoice paid without intent",
			typ:    "invoice.paid",
			object: `{"id":"in_1","status":"paid","payment_intent":null}`,
			expected: payment.InvoicePaid{
				Meta:      payment.Meta{ID: "evt_x", Type: "invoice.paid"},
				InvoiceID: "in_1",
			},
		},
		{
			name:   "finalized invoice created",
			typ:    "invoice.created",
			object: `{"id":"in_4","status":"open"}`,
			expected: payment.InvoiceCreated{
				Meta:      payment.Meta{ID: "evt_x", Type: "invoice.created"},
				InvoiceID: "in_4",
			},
		},
		{
			name:   "draft invoice created",
			typ:    "invoice.created",
			object: `{"id":"in_2","status":"draft"}`,
			expected: payment.InvoiceCreated{
				Meta:      payment.Meta{ID: "evt_x", Type: "invoice.created"},
				InvoiceID: "in_2",
				Draft:     true,
			},
		},
		{
			name:   "payment intent succeeded",
			typ:    "payment_intent.succeeded",
			object: `{"id":"pi_1","object":"payment_intent"}`,
			expected: payment.PaymentIntentSucceeded{
				Meta:            payment.Meta{ID: "evt_x", Type: "payment_intent.succeeded"},
				PaymentIntentID: "pi_1",
			},
		},
		{
			name:   "payment intent failed",
			typ:    "payment_intent.payment_failed",
			object: `{"id":"pi_2","object":"payment_intent"}`,
			expected: payment.PaymentIntentFailed{
				Meta:            payment.Meta{ID: "evt_x", Type: "payment_intent.payment_failed"},
				PaymentIntentID: "pi_2",
			},
		},
		{
			name:   "subscription updated",
			typ:    "customer.subscription.updated",
			object: `{"id":"sub_1","status":"past_due","latest_invoice":"in_3"}`,
			expected: payment.SubscriptionStatusChanged{
				Meta:            payment.Meta{ID: "evt_x", Type: "customer.subscription.updated"},
				SubscriptionID:  "sub_1",
				LatestInvoiceID: "in_3",
				Status:          "past_due",
			},
		},
		{
			name:   "subscription with expanded latest invoice",
			typ:    "customer.subscription.deleted",
			object: `{"id":"sub_2","status":"canceled","latest_invoice":{"id":"in_5","object":"invoice","status":"void"}}`,
			expected: payment.SubscriptionStatusChanged{
				Meta:            payment.Meta{ID: "evt_x", Type: "customer.subscription.deleted"},
				SubscriptionID:  "sub_2",
				LatestInvoiceID: "in_5",
				Status:          "canceled",
			},
		},
		{
			name:   "subscription without an invoice yet",
			typ:    "customer.subscription.created",
			object: `{"id":"sub_3","status":"incomplete","latest_invoice":null}`,
			expected: payment.SubscriptionStatusChanged{
				Meta:           payment.Meta{ID: "evt_x", Type: "customer.subscription.created"},
				SubscriptionID: "sub_3",
				Status:         "incomplete",
			},
		},
		{
			name:     "anything else is unrecognized",
			typ:      "charge.refunded",
			object:   `{"id":"ch_1"}`,
			expected: payment.Unrecognized{Meta: payment.Meta{ID: "evt_x", Type: "charge.refunded"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := decoder.Decode(stripetest.EventPayload("evt_x", tc.typ, tc.object))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ev)
		})
	}

	t.Run("malformed invoice object", func(t *testing.T) {
		_, err := decoder.Decode(stripetest.EventPayload("evt_x", "invoice.paid", `{"id":7}`))
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := decoder.Decode([]byte("nope"))
		assert.Error(t, err)
	})
}
