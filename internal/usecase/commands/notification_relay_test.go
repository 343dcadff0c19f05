//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/shared"
	commandsmock "rental-booking/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotificationRelay(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	job := func(attempts int) shared.NotificationJob {
		return shared.NotificationJob{
			ID:       uuid.New(),
			Kind:     shared.NotificationInvoicePaymentFailed,
			Topic:    "booking-notifications",
			Key:      uuid.NewString(),
			Payload:  []byte(`{"kind":"invoice_payment_failed"}`),
			RunAt:    now,
			Attempts: attempts,
		}
	}

	setup := func(t *testing.T, cfg commands.RelayConfig) (*txMocks, *commandsmock.MockNotificationPublisher, *commands.NotificationRelay) {
		ctrl := gomock.NewController(t)
		mocks := newTxMocks(ctrl)
		publisher := commandsmock.NewMockNotificationPublisher(ctrl)
		relay := commands.NewNotificationRelay(mocks.uow, publisher, clock.NewMockClock(now), cfg, discardLogger)
		return mocks, publisher, relay
	}

	t.Run("published jobs are marked sent", func(t *testing.T) {
		mocks, publisher, relay := setup(t, commands.RelayConfig{BatchSize: 10, MaxAttempts: 3})
		a, b := job(0), job(0)

		mocks.notifications.EXPECT().ClaimDue(gomock.Any(), now, 10).Return([]shared.NotificationJob{a, b}, nil)
		publisher.EXPECT().Publish(gomock.Any(), a.Topic, a.Key, a.Payload).Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), b.Topic, b.Key, b.Payload).Return(nil)
		mocks.notifications.EXPECT().MarkSent(gomock.Any(), a.ID, now).Return(nil)
		mocks.notifications.EXPECT().MarkSent(gomock.Any(), b.ID, now).Return(nil)

		sent, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("failed publish is retried with exponential backoff", func(t *testing.T) {
		mocks, publisher, relay := setup(t, commands.RelayConfig{BatchSize: 10, MaxAttempts: 5})
		j := job(2)

		mocks.notifications.EXPECT().ClaimDue(gomock.Any(), now, 10).Return([]shared.NotificationJob{j}, nil)
		publisher.EXPECT().Publish(gomock.Any(), j.Topic, j.Key, j.Payload).Return(errors.New("broker unavailable"))
		mocks.notifications.EXPECT().MarkRetry(gomock.Any(), j.ID, 3, now.Add(8*time.Second), "broker unavailable").Return(nil)

		sent, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("backoff is capped", func(t *testing.T) {
		mocks, publisher, relay := setup(t, commands.RelayConfig{BatchSize: 10, MaxAttempts: 100})
		j := job(20)

		mocks.notifications.EXPECT().ClaimDue(gomock.Any(), now, 10).Return([]shared.NotificationJob{j}, nil)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
		mocks.notifications.EXPECT().MarkRetry(gomock.Any(), j.ID, 21, now.Add(5*time.Minute), "timeout").Return(nil)

		_, err := relay.RunOnce(ctx)
		require.NoError(t, err)
	})

	t.Run("last attempt marks the job failed", func(t *testing.T) {
		mocks, publisher, relay := setup(t, commands.RelayConfig{BatchSize: 10, MaxAttempts: 3})
		j := job(2)

		mocks.notifications.EXPECT().ClaimDue(gomock.Any(), now, 10).Return([]shared.NotificationJob{j}, nil)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("rejected"))
		mocks.notifications.EXPECT().MarkFailed(gomock.Any(), j.ID, 3, "rejected").Return(nil)
		mocks.notifications.EXPECT().MarkRetry(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := relay.RunOnce(ctx)
		require.NoError(t, err)
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		mocks, _, relay := setup(t, commands.RelayConfig{})

		mocks.notifications.EXPECT().ClaimDue(gomock.Any(), now, 50).Return(nil, nil)

		sent, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("claim failure is returned", func(t *testing.T) {
		mocks, _, relay := setup(t, commands.RelayConfig{})

		mocks.notifications.EXPECT().ClaimDue(gomock.Any(), now, 50).Return(nil, errors.New("db down"))

		_, err := relay.RunOnce(ctx)
		assert.Error(t, err)
	})
}
