package commands

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// AvailabilityChecker reports whether a date range is already held on an
// apartment by a booking that is not rejected. It has no side effects; callers
// that act on the answer must hold the apartment lock.
type AvailabilityChecker struct{}

func NewAvailabilityChecker() *AvailabilityChecker {
	return &AvailabilityChecker{}
}

func (a *AvailabilityChecker) Conflicts(
	ctx context.Context,
	ledger shared.BookingRepository,
	apartmentID uuid.UUID,
	dates booking.DateRange,
) (bool, error) {
	return ledger.HasActiveOverlap(ctx, apartmentID, dates)
}
