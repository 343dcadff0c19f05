// Package payment holds the closed set of processor notifications the
// reconciler understands. Events are decoded once at the transport boundary.
package payment

type Category string

const (
	CategoryInvoicePaid               Category = "invoice_paid"
	CategoryInvoicePaymentFailed      Category = "invoice_payment_failed"
	CategoryPaymentIntentSucceeded    Category = "payment_intent_succeeded"
	CategoryPaymentIntentFailed       Category = "payment_intent_failed"
	CategorySubscriptionStatusChanged Category = "subscription_status_changed"
	CategoryInvoiceCreated            Category = "invoice_created"
	CategoryUnrecognized              Category = "unrecognized"
)

func (c Category) String() string {
	return string(c)
}

type Event interface {
	EventID() string
	// ProcessorType is the raw type string reported by the processor.
	ProcessorType() string
	Category() Category
	sealed()
}

type Meta struct {
	ID   string
	Type string
}

func (m Meta) EventID() string       { return m.ID }
func (m Meta) ProcessorType() string { return m.Type }
func (Meta) sealed()                 {}

type InvoicePaid struct {
	Meta
	InvoiceID string
}

func (InvoicePaid) Category() Category { return CategoryInvoicePaid }

type InvoicePaymentFailed struct {
	Meta
	InvoiceID string
}

func (InvoicePaymentFailed) Category() Category { return CategoryInvoicePaymentFailed }

// PaymentIntentSucceeded and PaymentIntentFailed belong to the direct-charge
// path and are matched by payment intent id rather than invoice id.
type PaymentIntentSucceeded struct {
	Meta
	PaymentIntentID string
}

func (PaymentIntentSucceeded) Category() Category { return CategoryPaymentIntentSucceeded }

type PaymentIntentFailed struct {
	Meta
	PaymentIntentID string
}

func (PaymentIntentFailed) Category() Category { return CategoryPaymentIntentFailed }

// SubscriptionStatusChanged is matched through the subscription's latest invoice.
type SubscriptionStatusChanged struct {
	Meta
	SubscriptionID  string
	LatestInvoiceID string
	Status          string
}

func (SubscriptionStatusChanged) Category() Category { return CategorySubscriptionStatusChanged }

type InvoiceCreated struct {
	Meta
	InvoiceID string
	Draft     bool
}

func (InvoiceCreated) Category() Category { return CategoryInvoiceCreated }

type Unrecognized struct {
	Meta
}

func (Unrecognized) Category() Category { return CategoryUnrecognized }
