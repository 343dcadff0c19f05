package shared

import (
	"context"
	"time"

	"rental-booking/internal/domain/apartment"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/user"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow_mock.go -package=sharedmock

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Apartments() ApartmentRepository
	Users() UserRepository
	Notifications() NotificationRepository
}

// BookingRepository is the Booking Ledger. The ForUpdate finders lock the row
// until the surrounding transaction ends.
type BookingRepository interface {
	// LockApartment serializes booking creation per apartment for the rest of the transaction.
	LockApartment(ctx context.Context, apartmentID uuid.UUID) error
	HasActiveOverlap(ctx context.Context, apartmentID uuid.UUID, dates booking.DateRange) (bool, error)
	Create(ctx context.Context, b *booking.Booking) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*booking.Booking, error)
	FindByPaymentIntentIDForUpdate(ctx context.Context, paymentIntentID string) (*booking.Booking, error)
	// Update writes b only if the stored version still equals b.Version().
	Update(ctx context.Context, b *booking.Booking) error
}

// RateLookup returns the live monthly rate of an apartment.
type RateLookup interface {
	MonthlyRate(ctx context.Context, apartmentID uuid.UUID) (booking.MonthlyRate, error)
}

type ApartmentRepository interface {
	RateLookup
	FindByID(ctx context.Context, id uuid.UUID) (*apartment.Apartment, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, job NotificationJob) error
	// ClaimDue locks up to limit queued jobs whose run_at has passed, skipping rows held by other relays.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkRetry(ctx context.Context, id uuid.UUID, attempts int, runAt time.Time, lastErr string) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string) error
}
