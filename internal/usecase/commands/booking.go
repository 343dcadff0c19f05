package commands

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/metrics"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	transitionCreate       = "create"
	transitionAdminApprove = "admin_approve"
	transitionOwnerApprove = "owner_approve"
	transitionReject       = "reject"
)

type CreateBookingInput struct {
	TenantID        uuid.UUID
	ApartmentID     uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	PaymentMethodID string
}

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking_mock.go -package=commandsmock

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*booking.Booking, error)
	AdminApprove(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error)
	OwnerApprove(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error)
	Reject(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow          shared.UnitOfWork
	services     *booking.Services
	availability *AvailabilityChecker
	biller       Biller
	logger       *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	services *booking.Services,
	availability *AvailabilityChecker,
	biller Biller,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:          uow,
		services:     services,
		availability: availability,
		biller:       biller,
		logger:       logger,
	}
}

// Create serializes on the apartment so the overlap check and the insert see
// the same ledger. The exclusion constraint backs this up at the storage layer.
func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (*booking.Booking, error) {
	dates, err := booking.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		c.record(transitionCreate, uuid.Nil, err)
		return nil, err
	}

	var created *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		apt, err := tx.Apartments().FindByID(ctx, in.ApartmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrApartmentNotFound)
			}
			return err
		}

		if err := tx.Bookings().LockApartment(ctx, apt.ID()); err != nil {
			return err
		}

		conflict, err := c.availability.Conflicts(ctx, tx.Bookings(), apt.ID(), dates)
		if err != nil {
			return err
		}
		if conflict {
			return errs.Wrap(errs.ErrBookingConflict, dates.String())
		}

		b, err := booking.NewBooking(c.services, apt.ChargeSpec(), in.TenantID, dates, in.PaymentMethodID)
		if err != nil {
			return err
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, errs.ErrBookingConflict)
			}
			return err
		}

		created = b
		return nil
	})

	bookingID := uuid.Nil
	if created != nil {
		bookingID = created.ID()
	}
	c.record(transitionCreate, bookingID, err)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *bookingCommandsImpl) AdminApprove(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, transitionAdminApprove, bookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) error {
		return b.AdminApprove(c.services.Clock.Now())
	})
}

// OwnerApprove re-prices the booking at the apartment's current rate and
// bills it. Any billing failure rolls the whole transition back, so an
// owner-approved booking always carries an invoice or payment intent id.
func (c *bookingCommandsImpl) OwnerApprove(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, transitionOwnerApprove, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		return c.ownerApprove(ctx, tx, tx.Apartments(), b)
	})
}

func (c *bookingCommandsImpl) ownerApprove(ctx context.Context, tx shared.Tx, rates shared.RateLookup, b *booking.Booking) error {
	rate, err := rates.MonthlyRate(ctx, b.ApartmentID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrApartmentNotFound)
		}
		return err
	}

	now := c.services.Clock.Now()
	if err := b.OwnerApprove(c.services.ChargeCalculator, rate, now); err != nil {
		return err
	}

	return c.biller.Bill(ctx, tx.Users(), b, now)
}

func (c *bookingCommandsImpl) Reject(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, transitionReject, bookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) error {
		return b.Reject(c.services.Clock.Now())
	})
}

// transition locks the booking row, runs the guarded mutation against that
// locked state and writes it back with a version check.
func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	name string,
	bookingID uuid.UUID,
	mutate func(ctx context.Context, tx shared.Tx, b *booking.Booking) error,
) (*booking.Booking, error) {
	var updated *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrBookingNotFound)
			}
			return err
		}

		if err := mutate(ctx, tx, b); err != nil {
			return err
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})

	c.record(name, bookingID, err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *bookingCommandsImpl) record(transition string, bookingID uuid.UUID, err error) {
	outcome := transitionOutcome(err)
	metrics.IncBookingTransition(transition, outcome)

	attrs := []any{
		slog.String("transition", transition),
		slog.String("outcome", outcome),
	}
	if bookingID != uuid.Nil {
		attrs = append(attrs, slog.String("booking_id", bookingID.String()))
	}

	switch outcome {
	case "ok":
		c.logger.Info("booking transition applied", attrs...)
	case "error":
		c.logger.Error("booking transition failed", append(attrs, slog.String("error", err.Error()))...)
	default:
		c.logger.Warn("booking transition refused", attrs...)
	}
}

func transitionOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errs.Is(err, booking.ErrInvalidRange):
		return "invalid_range"
	case errs.Is(err, errs.ErrBookingConflict):
		return "conflict"
	case errs.Is(err, errs.ErrBookingNotFound), errs.Is(err, errs.ErrApartmentNotFound):
		return "not_found"
	case errs.Is(err, booking.ErrAdminApprovalRequired):
		return "admin_approval_required"
	case errs.Is(err, booking.ErrAlreadyApproved):
		return "already_approved"
	case errs.Is(err, booking.ErrInvalidState):
		return "invalid_state"
	case errs.Is(err, errs.ErrBillingIdentityMissing):
		return "billing_identity_missing"
	case errs.Is(err, errs.ErrExternalServiceFailure):
		return "external_failure"
	default:
		return "error"
	}
}
