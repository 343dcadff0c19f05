package repository

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findUserSQL = `SELECT id, role, stripe_customer_id FROM users WHERE id = $1`

type UserRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserRepository(dbtx db.DBTX, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: dbtx, logger: logger}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var (
		userID     uuid.UUID
		rawRole    string
		customerID pgtype.Text
	)
	if err := r.db.QueryRow(ctx, findUserSQL, id).Scan(&userID, &rawRole, &customerID); err != nil {
		kind := infra.ClassifyPgErr(err)
		if kind == infra.KindNotFound {
			return nil, infra.WrapRepoErr(r.logger, kind, "user not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, kind, "failed to find user by ID", err)
	}

	role, err := user.NewRole(rawRole)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored user role is invalid", err)
	}
	return user.ReconstructUser(userID, role, pgconv.StringPtrFromPgtype(customerID)), nil
}
