package commands

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/metrics"
	"rental-booking/internal/usecase/shared"
)

const maxRelayBackoff = 5 * time.Minute

type RelayConfig struct {
	BatchSize   int
	MaxAttempts int
}

// NotificationRelay drains the notification outbox into the publisher. Jobs are
// claimed with SKIP LOCKED so several relays can run side by side.
type NotificationRelay struct {
	uow       shared.UnitOfWork
	publisher NotificationPublisher
	clock     clock.Clock
	cfg       RelayConfig
	logger    *slog.Logger
}

func NewNotificationRelay(
	uow shared.UnitOfWork,
	publisher NotificationPublisher,
	clock clock.Clock,
	cfg RelayConfig,
	logger *slog.Logger,
) *NotificationRelay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &NotificationRelay{
		uow:       uow,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
	}
}

// RunOnce publishes one batch and returns how many jobs were sent.
func (r *NotificationRelay) RunOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		now := r.clock.Now()

		jobs, err := tx.Notifications().ClaimDue(ctx, now, r.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			pubErr := r.publisher.Publish(ctx, job.Topic, job.Key, job.Payload)
			if pubErr == nil {
				if err := tx.Notifications().MarkSent(ctx, job.ID, now); err != nil {
					return err
				}
				metrics.IncNotificationPublished("sent")
				sent++
				continue
			}

			attempts := job.Attempts + 1
			log := r.logger.With(
				slog.String("job_id", job.ID.String()),
				slog.String("kind", string(job.Kind)),
				slog.Int("attempts", attempts),
				slog.String("error", pubErr.Error()),
			)
			if attempts >= r.cfg.MaxAttempts {
				if err := tx.Notifications().MarkFailed(ctx, job.ID, attempts, pubErr.Error()); err != nil {
					return err
				}
				metrics.IncNotificationPublished("failed")
				log.Error("notification dropped after max attempts")
				continue
			}

			if err := tx.Notifications().MarkRetry(ctx, job.ID, attempts, now.Add(relayBackoff(attempts)), pubErr.Error()); err != nil {
				return err
			}
			metrics.IncNotificationPublished("retry")
			log.Warn("notification publish failed, will retry")
		}
		return nil
	})
	return sent, err
}

func relayBackoff(attempts int) time.Duration {
	if attempts > 16 {
		return maxRelayBackoff
	}
	d := time.Duration(1<<attempts) * time.Second
	return min(d, maxRelayBackoff)
}
