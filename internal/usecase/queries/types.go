package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView is the read-optimized shape of a booking joined with its apartment.
type BookingView struct {
	ID                 uuid.UUID `json:"id"`
	TenantID           uuid.UUID `json:"tenant_id"`
	ApartmentID        uuid.UUID `json:"apartment_id"`
	ApartmentTitle     string    `json:"apartment_title"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	AmountCents        int64     `json:"amount_cents"`
	Status             string    `json:"status"`
	AdminApproved      bool      `json:"admin_approved"`
	OwnerApproved      bool      `json:"owner_approved"`
	PaymentMethodID    string    `json:"payment_method_id"`
	InvoiceID          *string   `json:"invoice_id,omitempty"`
	InvoiceStatus      *string   `json:"invoice_status,omitempty"`
	PaymentIntentID    *string   `json:"payment_intent_id,omitempty"`
	SubscriptionStatus *string   `json:"subscription_status,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
