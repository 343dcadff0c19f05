package components

import (
	"rental-booking/internal/infra/db"
	"rental-booking/internal/infra/readstore"
	"rental-booking/internal/infra/uow"
	"rental-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Write side: repositories are built per transaction by the UoW
		uow.NewPostgresUoW,
		// Read side
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
