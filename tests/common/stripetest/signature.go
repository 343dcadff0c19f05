//go:build unit || e2e

package stripetest

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76/webhook"
)

// SignatureHeader builds a Stripe-Signature header value for payload.
func SignatureHeader(secret string, payload []byte, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}

// EventPayload renders a minimal webhook event around a data object.
func EventPayload(id, eventType, object string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":%q,"object":"event","api_version":"2023-10-16","created":%d,"livemode":false,"type":%q,"data":{"object":%s}}`,
		id, time.Now().Unix(), eventType, object,
	))
}
