//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		view := builder.NewBookingBuilder().BuildView()

		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := queries.NewBookingQueries(store).GetByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("missing booking maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)
		id := uuid.New()

		store.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.RepositoryError{Kind: infra.KindNotFound})

		_, err := queries.NewBookingQueries(store).GetByID(ctx, id)
		assert.True(t, errs.Is(err, errs.ErrBookingNotFound))
	})

	t.Run("storage failure passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockBookingReadStore(ctrl)

		store.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := queries.NewBookingQueries(store).GetByID(ctx, uuid.New())
		require.Error(t, err)
		assert.False(t, errs.Is(err, errs.ErrBookingNotFound))
	})
}

func TestBookingQueries_Lists(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name      string
		limit     int
		wantLimit int32
	}{
		{name: "default when unset", limit: 0, wantLimit: 50},
		{name: "negative falls back to default", limit: -3, wantLimit: 50},
		{name: "within bounds", limit: 20, wantLimit: 20},
		{name: "capped", limit: 10000, wantLimit: 200},
	}

	for _, tc := range cases {
		t.Run("pending: "+tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockBookingReadStore(ctrl)

			store.EXPECT().
				FindByStatuses(gomock.Any(), []string{"pending", "admin_approved"}, tc.wantLimit).
				Return([]*queries.BookingView{}, nil)

			_, err := queries.NewBookingQueries(store).ListPending(ctx, tc.limit)
			assert.NoError(t, err)
		})

		t.Run("tenant: "+tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockBookingReadStore(ctrl)
			tenantID := uuid.New()

			store.EXPECT().FindByTenantID(gomock.Any(), tenantID, tc.wantLimit).Return(nil, nil)

			_, err := queries.NewBookingQueries(store).ListByTenant(ctx, tenantID, tc.limit)
			assert.NoError(t, err)
		})
	}
}
