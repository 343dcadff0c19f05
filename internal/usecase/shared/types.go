package shared

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationSubscriptionDelinquent NotificationKind = "subscription_delinquent"
	NotificationInvoicePaymentFailed   NotificationKind = "invoice_payment_failed"
)

type NotificationJob struct {
	ID        uuid.UUID
	Kind      NotificationKind
	Topic     string
	Key       string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
	CreatedAt time.Time
}
