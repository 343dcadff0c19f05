package repository

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/infra/repository/converter"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	lockApartmentSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

	hasActiveOverlapSQL = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE apartment_id = $1
			  AND start_date < $3
			  AND $2 < end_date
			  AND status = ANY($4)
		)`

	insertBookingSQL = `
		INSERT INTO bookings (
			id, tenant_id, apartment_id, start_date, end_date, amount_cents, status,
			admin_approved, owner_approved, payment_method_id, invoice_id, invoice_status,
			payment_intent_id, subscription_status, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	updateBookingSQL = `
		UPDATE bookings SET
			amount_cents = $3,
			status = $4,
			admin_approved = $5,
			owner_approved = $6,
			invoice_id = $7,
			invoice_status = $8,
			payment_intent_id = $9,
			subscription_status = $10,
			updated_at = $11,
			version = version + 1
		WHERE id = $1 AND version = $2`
)

type BookingRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingRepository(dbtx db.DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{db: dbtx, logger: logger}
}

func (r *BookingRepository) LockApartment(ctx context.Context, apartmentID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, lockApartmentSQL, apartmentID.String()); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to lock apartment", err)
	}
	return nil
}

func (r *BookingRepository) HasActiveOverlap(ctx context.Context, apartmentID uuid.UUID, dates booking.DateRange) (bool, error) {
	active := make([]string, 0, len(booking.ActiveStatuses()))
	for _, s := range booking.ActiveStatuses() {
		active = append(active, s.String())
	}

	var exists bool
	err := r.db.QueryRow(ctx, hasActiveOverlapSQL,
		apartmentID,
		pgconv.DateToPgtype(dates.Start()),
		pgconv.DateToPgtype(dates.End()),
		active,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	row := converter.BookingToRow(b)
	_, err := r.db.Exec(ctx, insertBookingSQL,
		row.ID, row.TenantID, row.ApartmentID, row.StartDate, row.EndDate, row.AmountCents, row.Status,
		row.AdminApproved, row.OwnerApproved, row.PaymentMethodID, row.InvoiceID, row.InvoiceStatus,
		row.PaymentIntentID, row.SubscriptionStatus, row.Version, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOneForUpdate(ctx, "id = $1", id)
}

func (r *BookingRepository) FindByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*booking.Booking, error) {
	return r.findOneForUpdate(ctx, "invoice_id = $1", invoiceID)
}

func (r *BookingRepository) FindByPaymentIntentIDForUpdate(ctx context.Context, paymentIntentID string) (*booking.Booking, error) {
	return r.findOneForUpdate(ctx, "payment_intent_id = $1", paymentIntentID)
}

func (r *BookingRepository) findOneForUpdate(ctx context.Context, where string, arg any) (*booking.Booking, error) {
	query := "SELECT " + converter.BookingColumns + " FROM bookings WHERE " + where + " FOR UPDATE"

	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, query, arg).Scan(row.Targets()...); err != nil {
		kind := infra.ClassifyPgErr(err)
		if kind == infra.KindNotFound {
			return nil, infra.WrapRepoErr(r.logger, kind, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, kind, "failed to load booking", err)
	}

	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored booking is inconsistent", err)
	}
	return b, nil
}

// Update is a compare-and-swap on version. A miss means another writer got
// there first, which the row lock should make impossible inside one transaction.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	row := converter.BookingToRow(b)
	tag, err := r.db.Exec(ctx, updateBookingSQL,
		row.ID, row.Version, row.AmountCents, row.Status, row.AdminApproved, row.OwnerApproved,
		row.InvoiceID, row.InvoiceStatus, row.PaymentIntentID, row.SubscriptionStatus, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindStaleWrite, "booking version changed underneath update", nil)
	}
	return nil
}
