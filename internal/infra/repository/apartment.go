package repository

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/apartment"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"

	"github.com/google/uuid"
)

const (
	findApartmentSQL = `SELECT id, owner_id, title, price_per_month::text FROM apartments WHERE id = $1`
	monthlyRateSQL   = `SELECT price_per_month::text FROM apartments WHERE id = $1`
)

type ApartmentRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewApartmentRepository(dbtx db.DBTX, logger *slog.Logger) *ApartmentRepository {
	return &ApartmentRepository{db: dbtx, logger: logger}
}

func (r *ApartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*apartment.Apartment, error) {
	var (
		aptID, ownerID uuid.UUID
		title, price   string
	)
	if err := r.db.QueryRow(ctx, findApartmentSQL, id).Scan(&aptID, &ownerID, &title, &price); err != nil {
		return nil, r.lookupErr(err)
	}

	rate, err := booking.ParseMonthlyRate(price)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored apartment rate is invalid", err)
	}
	return apartment.ReconstructApartment(aptID, ownerID, title, rate), nil
}

// MonthlyRate reads the rate at call time, so approvals always price against the live value.
func (r *ApartmentRepository) MonthlyRate(ctx context.Context, apartmentID uuid.UUID) (booking.MonthlyRate, error) {
	var price string
	if err := r.db.QueryRow(ctx, monthlyRateSQL, apartmentID).Scan(&price); err != nil {
		return booking.MonthlyRate{}, r.lookupErr(err)
	}

	rate, err := booking.ParseMonthlyRate(price)
	if err != nil {
		return booking.MonthlyRate{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored apartment rate is invalid", err)
	}
	return rate, nil
}

func (r *ApartmentRepository) lookupErr(err error) error {
	kind := infra.ClassifyPgErr(err)
	if kind == infra.KindNotFound {
		return infra.WrapRepoErr(r.logger, kind, "apartment not found", err)
	}
	return infra.WrapRepoErr(r.logger, kind, "failed to load apartment", err)
}
