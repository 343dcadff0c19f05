package queries

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking_mock.go -package=queriesmock

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// ListPending returns bookings still waiting on an admin or owner, newest first.
	ListPending(ctx context.Context, limit int) ([]*BookingView, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByStatuses(ctx context.Context, statuses []string, limit int32) ([]*BookingView, error)
	FindByTenantID(ctx context.Context, tenantID uuid.UUID, limit int32) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListPending(ctx context.Context, limit int) ([]*BookingView, error) {
	statuses := []string{booking.StatusPending.String(), booking.StatusAdminApproved.String()}
	return q.store.FindByStatuses(ctx, statuses, clampLimit(limit))
}

func (q *bookingQueriesImpl) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*BookingView, error) {
	return q.store.FindByTenantID(ctx, tenantID, clampLimit(limit))
}

func clampLimit(limit int) int32 {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	// #nosec G115 -- bounded above by maxListLimit
	return int32(limit)
}
