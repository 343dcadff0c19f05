//go:build unit || e2e

package builder

import (
	"time"

	"rental-booking/internal/domain/booking"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type BookingBuilder struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	ApartmentID     uuid.UUID
	ApartmentTitle  string
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRate     string
	PaymentMethodID string
	Status          booking.Status
	InvoiceID       *string
	InvoiceStatus   *booking.InvoiceStatus
	PaymentIntentID *string
	Version         int64
	Now             time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:              uuid.New(),
		TenantID:        uuid.New(),
		ApartmentID:     uuid.New(),
		ApartmentTitle:  "Sunny loft",
		StartDate:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		MonthlyRate:     "1200.00",
		PaymentMethodID: "pm_card_visa",
		Status:          booking.StatusPending,
		Version:         1,
		Now:             time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Services() *booking.Services {
	return &booking.Services{
		Clock:            clock.NewMockClock(b.Now),
		ChargeCalculator: booking.NewMonthlyChargeCalculator(),
	}
}

func (b *BookingBuilder) ApartmentSpec() booking.ApartmentSpec {
	rate, err := booking.ParseMonthlyRate(b.MonthlyRate)
	if err != nil {
		panic(err)
	}
	return booking.ApartmentSpec{ID: b.ApartmentID, MonthlyRate: rate}
}

// BuildDomain creates a fresh pending booking the way the create command does.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	dates, err := booking.NewDateRange(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.Services(), b.ApartmentSpec(), b.TenantID, dates, b.PaymentMethodID)
}

// BuildStored rebuilds a booking as if loaded from the ledger in b.Status.
func (b *BookingBuilder) BuildStored() (*booking.Booking, error) {
	dates, err := booking.NewDateRange(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}
	amount, err := booking.NewMonthlyChargeCalculator().Charge(dates, b.ApartmentSpec().MonthlyRate)
	if err != nil {
		return nil, err
	}

	rec := booking.Record{
		ID:              b.ID,
		TenantID:        b.TenantID,
		ApartmentID:     b.ApartmentID,
		Dates:           dates,
		Amount:          amount,
		Status:          b.Status,
		AdminApproved:   b.Status == booking.StatusAdminApproved || b.Status == booking.StatusOwnerApproved,
		OwnerApproved:   b.Status == booking.StatusOwnerApproved,
		PaymentMethodID: b.PaymentMethodID,
		InvoiceID:       b.InvoiceID,
		InvoiceStatus:   b.InvoiceStatus,
		PaymentIntentID: b.PaymentIntentID,
		Version:         b.Version,
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
	}
	return booking.ReconstructBooking(rec)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              b.ID,
		TenantID:        b.TenantID,
		ApartmentID:     b.ApartmentID,
		ApartmentTitle:  b.ApartmentTitle,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		AmountCents:     240000,
		Status:          b.Status.String(),
		AdminApproved:   b.Status == booking.StatusAdminApproved || b.Status == booking.StatusOwnerApproved,
		OwnerApproved:   b.Status == booking.StatusOwnerApproved,
		PaymentMethodID: b.PaymentMethodID,
		InvoiceID:       b.InvoiceID,
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ApartmentID:     b.ApartmentID,
		StartDate:       b.StartDate.Format(dateLayout),
		EndDate:         b.EndDate.Format(dateLayout),
		PaymentMethodID: b.PaymentMethodID,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithDates(start, end string) *BookingBuilder {
	b.StartDate, _ = time.Parse(dateLayout, start)
	b.EndDate, _ = time.Parse(dateLayout, end)
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithTenantID(id uuid.UUID) *BookingBuilder {
	b.TenantID = id
	return b
}

func (b *BookingBuilder) WithApartmentID(id uuid.UUID) *BookingBuilder {
	b.ApartmentID = id
	return b
}

func (b *BookingBuilder) WithMonthlyRate(rate string) *BookingBuilder {
	b.MonthlyRate = rate
	return b
}

func (b *BookingBuilder) WithPaymentMethodID(id string) *BookingBuilder {
	b.PaymentMethodID = id
	return b
}

// WithInvoice implies owner approval, since only owner-approved bookings carry invoices.
func (b *BookingBuilder) WithInvoice(invoiceID string, status booking.InvoiceStatus) *BookingBuilder {
	b.Status = booking.StatusOwnerApproved
	b.InvoiceID = &invoiceID
	b.InvoiceStatus = &status
	return b
}

// WithPaymentIntent is the direct-charge counterpart of WithInvoice.
func (b *BookingBuilder) WithPaymentIntent(paymentIntentID string, status booking.InvoiceStatus) *BookingBuilder {
	b.Status = booking.StatusOwnerApproved
	b.PaymentIntentID = &paymentIntentID
	b.InvoiceStatus = &status
	return b
}
