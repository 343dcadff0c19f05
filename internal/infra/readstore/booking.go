package readstore

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewSelect = `
	SELECT b.id, b.tenant_id, b.apartment_id, a.title, b.start_date, b.end_date, b.amount_cents,
	       b.status, b.admin_approved, b.owner_approved, b.payment_method_id, b.invoice_id,
	       b.invoice_status, b.payment_intent_id, b.subscription_status, b.created_at, b.updated_at
	FROM bookings b
	JOIN apartments a ON a.id = b.apartment_id`

type BookingReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingReadStore(dbtx db.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{db: dbtx, logger: logger}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, bookingViewSelect+` WHERE b.id = $1`, id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find booking by ID", err)
	}
	return view, nil
}

func (s *BookingReadStore) FindByStatuses(ctx context.Context, statuses []string, limit int32) ([]*queries.BookingView, error) {
	return s.list(ctx, bookingViewSelect+` WHERE b.status = ANY($1) ORDER BY b.created_at DESC, b.id LIMIT $2`, statuses, limit)
}

func (s *BookingReadStore) FindByTenantID(ctx context.Context, tenantID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	return s.list(ctx, bookingViewSelect+` WHERE b.tenant_id = $1 ORDER BY b.created_at DESC, b.id LIMIT $2`, tenantID, limit)
}

func (s *BookingReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list bookings", err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan booking", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate bookings", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		v                                                   queries.BookingView
		startDate, endDate                                  pgtype.Date
		invoiceID, invoiceStatus, intentID, subscriptionRaw pgtype.Text
		createdAt, updatedAt                                pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.TenantID, &v.ApartmentID, &v.ApartmentTitle, &startDate, &endDate, &v.AmountCents,
		&v.Status, &v.AdminApproved, &v.OwnerApproved, &v.PaymentMethodID, &invoiceID,
		&invoiceStatus, &intentID, &subscriptionRaw, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.StartDate = pgconv.DateFromPgtype(startDate)
	v.EndDate = pgconv.DateFromPgtype(endDate)
	v.InvoiceID = pgconv.StringPtrFromPgtype(invoiceID)
	v.InvoiceStatus = pgconv.StringPtrFromPgtype(invoiceStatus)
	v.PaymentIntentID = pgconv.StringPtrFromPgtype(intentID)
	v.SubscriptionStatus = pgconv.StringPtrFromPgtype(subscriptionRaw)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
