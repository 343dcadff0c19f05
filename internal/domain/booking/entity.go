package booking

import (
	"errors"
	"strings"
	"time"

	"rental-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange          = errors.New("invalid date range")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrInvalidStatus         = errors.New("invalid booking status")
	ErrInvalidInvoiceStatus  = errors.New("invalid invoice status")
	ErrAlreadyApproved       = errors.New("booking already approved")
	ErrAdminApprovalRequired = errors.New("admin approval required")
	ErrInvalidState          = errors.New("illegal transition for current booking state")
	ErrInconsistentState     = errors.New("booking status does not match approval flags")
	ErrEmptyPaymentMethod    = errors.New("payment method reference is required")
	ErrEmptyInvoiceID        = errors.New("invoice id is required")
	ErrEmptyPaymentIntentID  = errors.New("payment intent id is required")
)

type Services struct {
	Clock            clock.Clock
	ChargeCalculator ChargeCalculator
}

type ApartmentSpec struct {
	ID          uuid.UUID
	MonthlyRate MonthlyRate
}

type Booking struct {
	id                 uuid.UUID
	tenantID           uuid.UUID
	apartmentID        uuid.UUID
	dates              DateRange
	amount             Money
	adminApproved      bool
	ownerApproved      bool
	rejected           bool
	paymentMethodID    string
	invoiceID          *string
	invoiceStatus      *InvoiceStatus
	paymentIntentID    *string
	subscriptionStatus *string
	version            int64
	createdAt          time.Time
	updatedAt          time.Time
}

func NewBooking(
	services *Services,
	apt ApartmentSpec,
	tenantID uuid.UUID,
	dates DateRange,
	paymentMethodID string,
) (*Booking, error) {
	paymentMethodID = strings.TrimSpace(paymentMethodID)
	if paymentMethodID == "" {
		return nil, ErrEmptyPaymentMethod
	}

	amount, err := services.ChargeCalculator.Charge(dates, apt.MonthlyRate)
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	return &Booking{
		id:              uuid.New(),
		tenantID:        tenantID,
		apartmentID:     apt.ID,
		dates:           dates,
		amount:          amount,
		paymentMethodID: paymentMethodID,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Record is the persisted shape of a booking.
type Record struct {
	ID                 uuid.UUID
	TenantID           uuid.UUID
	ApartmentID        uuid.UUID
	Dates              DateRange
	Amount             Money
	Status             Status
	AdminApproved      bool
	OwnerApproved      bool
	PaymentMethodID    string
	InvoiceID          *string
	InvoiceStatus      *InvoiceStatus
	PaymentIntentID    *string
	SubscriptionStatus *string
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func ReconstructBooking(r Record) (*Booking, error) {
	b := &Booking{
		id:                 r.ID,
		tenantID:           r.TenantID,
		apartmentID:        r.ApartmentID,
		dates:              r.Dates,
		amount:             r.Amount,
		adminApproved:      r.AdminApproved,
		ownerApproved:      r.OwnerApproved,
		rejected:           r.Status == StatusRejected,
		paymentMethodID:    r.PaymentMethodID,
		invoiceID:          r.InvoiceID,
		invoiceStatus:      r.InvoiceStatus,
		paymentIntentID:    r.PaymentIntentID,
		subscriptionStatus: r.SubscriptionStatus,
		version:            r.Version,
		createdAt:          r.CreatedAt,
		updatedAt:          r.UpdatedAt,
	}
	if !r.Status.IsValid() || b.Status() != r.Status {
		return nil, ErrInconsistentState
	}
	if b.ownerApproved && !b.adminApproved {
		return nil, ErrInconsistentState
	}
	return b, nil
}

// Status is a projection of the approval flags; it is never stored independently.
func (b *Booking) Status() Status {
	switch {
	case b.rejected:
		return StatusRejected
	case b.ownerApproved:
		return StatusOwnerApproved
	case b.adminApproved:
		return StatusAdminApproved
	default:
		return StatusPending
	}
}

func (b *Booking) AdminApprove(now time.Time) error {
	if b.rejected {
		return ErrInvalidState
	}
	if b.adminApproved {
		return ErrAlreadyApproved
	}
	b.adminApproved = true
	b.touch(now)
	return nil
}

// OwnerApprove recomputes the amount from the current rate before approving.
func (b *Booking) OwnerApprove(calc ChargeCalculator, rate MonthlyRate, now time.Time) error {
	if !b.adminApproved {
		return ErrAdminApprovalRequired
	}
	if b.rejected {
		return ErrInvalidState
	}
	if b.ownerApproved {
		return ErrAlreadyApproved
	}

	amount, err := calc.Charge(b.dates, rate)
	if err != nil {
		return err
	}

	b.amount = amount
	b.ownerApproved = true
	b.touch(now)
	return nil
}

// Reject clears both approval flags. Owner-approved bookings are invoiced and
// must go through cancellation instead.
func (b *Booking) Reject(now time.Time) error {
	switch b.Status() {
	case StatusPending, StatusAdminApproved:
	default:
		return ErrInvalidState
	}
	b.adminApproved = false
	b.ownerApproved = false
	b.rejected = true
	b.touch(now)
	return nil
}

// AttachInvoice and AttachPaymentIntent are alternatives: a booking is billed
// once, either by invoice or by a direct charge.
func (b *Booking) AttachInvoice(invoiceID string, now time.Time) error {
	if b.Status() != StatusOwnerApproved || b.isBilled() {
		return ErrInvalidState
	}
	if strings.TrimSpace(invoiceID) == "" {
		return ErrEmptyInvoiceID
	}
	pending := InvoiceStatusPending
	b.invoiceID = &invoiceID
	b.invoiceStatus = &pending
	b.touch(now)
	return nil
}

// ApplyInvoiceStatus is last-write-wins. It reports false when the status is
// already current, so replays leave the record untouched.
func (b *Booking) ApplyInvoiceStatus(status InvoiceStatus, now time.Time) (bool, error) {
	if !status.IsValid() {
		return false, ErrInvalidInvoiceStatus
	}
	if b.invoiceStatus != nil && *b.invoiceStatus == status {
		return false, nil
	}
	b.invoiceStatus = &status
	b.touch(now)
	return true, nil
}

func (b *Booking) ApplySubscriptionStatus(raw string, now time.Time) bool {
	if b.subscriptionStatus != nil && *b.subscriptionStatus == raw {
		return false
	}
	b.subscriptionStatus = &raw
	b.touch(now)
	return true
}

func (b *Booking) AttachPaymentIntent(paymentIntentID string, now time.Time) error {
	if b.Status() != StatusOwnerApproved || b.isBilled() {
		return ErrInvalidState
	}
	if strings.TrimSpace(paymentIntentID) == "" {
		return ErrEmptyPaymentIntentID
	}
	pending := InvoiceStatusPending
	b.paymentIntentID = &paymentIntentID
	b.invoiceStatus = &pending
	b.touch(now)
	return nil
}

func (b *Booking) touch(now time.Time) {
	b.updatedAt = now
}

func (b *Booking) IsInvoiced() bool {
	return b.invoiceID != nil
}

func (b *Booking) isBilled() bool {
	return b.invoiceID != nil || b.paymentIntentID != nil
}

func (b *Booking) ID() uuid.UUID                     { return b.id }
func (b *Booking) TenantID() uuid.UUID               { return b.tenantID }
func (b *Booking) ApartmentID() uuid.UUID            { return b.apartmentID }
func (b *Booking) Dates() DateRange                  { return b.dates }
func (b *Booking) Amount() Money                     { return b.amount }
func (b *Booking) AdminApproved() bool               { return b.adminApproved }
func (b *Booking) OwnerApproved() bool               { return b.ownerApproved }
func (b *Booking) PaymentMethodID() string           { return b.paymentMethodID }
func (b *Booking) InvoiceID() *string                { return b.invoiceID }
func (b *Booking) InvoiceStatus() *InvoiceStatus     { return b.invoiceStatus }
func (b *Booking) PaymentIntentID() *string          { return b.paymentIntentID }
func (b *Booking) SubscriptionStatus() *string       { return b.subscriptionStatus }
func (b *Booking) Version() int64                    { return b.version }
func (b *Booking) CreatedAt() time.Time              { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time              { return b.updatedAt }
