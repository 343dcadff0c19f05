package converter

import (
	"fmt"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the column list every booking SELECT uses, in BookingRow.Targets order.
const BookingColumns = `id, tenant_id, apartment_id, start_date, end_date, amount_cents, status,
	admin_approved, owner_approved, payment_method_id, invoice_id, invoice_status,
	payment_intent_id, subscription_status, version, created_at, updated_at`

type BookingRow struct {
	ID                 uuid.UUID
	TenantID           uuid.UUID
	ApartmentID        uuid.UUID
	StartDate          pgtype.Date
	EndDate            pgtype.Date
	AmountCents        int64
	Status             string
	AdminApproved      bool
	OwnerApproved      bool
	PaymentMethodID    string
	InvoiceID          pgtype.Text
	InvoiceStatus      pgtype.Text
	PaymentIntentID    pgtype.Text
	SubscriptionStatus pgtype.Text
	Version            int64
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

func (r *BookingRow) Targets() []any {
	return []any{
		&r.ID, &r.TenantID, &r.ApartmentID, &r.StartDate, &r.EndDate, &r.AmountCents, &r.Status,
		&r.AdminApproved, &r.OwnerApproved, &r.PaymentMethodID, &r.InvoiceID, &r.InvoiceStatus,
		&r.PaymentIntentID, &r.SubscriptionStatus, &r.Version, &r.CreatedAt, &r.UpdatedAt,
	}
}

func BookingToRow(b *booking.Booking) BookingRow {
	row := BookingRow{
		ID:                 b.ID(),
		TenantID:           b.TenantID(),
		ApartmentID:        b.ApartmentID(),
		StartDate:          pgconv.DateToPgtype(b.Dates().Start()),
		EndDate:            pgconv.DateToPgtype(b.Dates().End()),
		AmountCents:        b.Amount().Cents(),
		Status:             b.Status().String(),
		AdminApproved:      b.AdminApproved(),
		OwnerApproved:      b.OwnerApproved(),
		PaymentMethodID:    b.PaymentMethodID(),
		InvoiceID:          pgconv.StringPtrToPgtype(b.InvoiceID()),
		PaymentIntentID:    pgconv.StringPtrToPgtype(b.PaymentIntentID()),
		SubscriptionStatus: pgconv.StringPtrToPgtype(b.SubscriptionStatus()),
		Version:            b.Version(),
		CreatedAt:          pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:          pgconv.TimeToPgtype(b.UpdatedAt()),
	}
	if s := b.InvoiceStatus(); s != nil {
		row.InvoiceStatus = pgtype.Text{String: s.String(), Valid: true}
	}
	return row
}

func BookingFromRow(row BookingRow) (*booking.Booking, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	dates, err := booking.NewDateRange(pgconv.DateFromPgtype(row.StartDate), pgconv.DateFromPgtype(row.EndDate))
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}

	amount, err := booking.NewMoney(row.AmountCents)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", row.ID, err)
	}

	var invoiceStatus *booking.InvoiceStatus
	if row.InvoiceStatus.Valid {
		s, err := booking.ParseInvoiceStatus(row.InvoiceStatus.String)
		if err != nil {
			return nil, err
		}
		invoiceStatus = &s
	}

	return booking.ReconstructBooking(booking.Record{
		ID:                 row.ID,
		TenantID:           row.TenantID,
		ApartmentID:        row.ApartmentID,
		Dates:              dates,
		Amount:             amount,
		Status:             status,
		AdminApproved:      row.AdminApproved,
		OwnerApproved:      row.OwnerApproved,
		PaymentMethodID:    row.PaymentMethodID,
		InvoiceID:          pgconv.StringPtrFromPgtype(row.InvoiceID),
		InvoiceStatus:      invoiceStatus,
		PaymentIntentID:    pgconv.StringPtrFromPgtype(row.PaymentIntentID),
		SubscriptionStatus: pgconv.StringPtrFromPgtype(row.SubscriptionStatus),
		Version:            row.Version,
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}
