package components

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rental-booking/internal/infra/messaging"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(
		startNotificationRelay,
		startPaymentConsumer,
	),
)

// background runs fn until the app stops, then waits for it to return.
func background(lc fx.Lifecycle, fn func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fn(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func startNotificationRelay(lc fx.Lifecycle, cfg config.Config, relay *commands.NotificationRelay, logger *slog.Logger) {
	interval := cfg.Outbox.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	background(lc, func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := relay.RunOnce(ctx); err != nil && ctx.Err() == nil {
					logger.Error("notification relay pass failed", slog.String("error", err.Error()))
				}
			}
		}
	})
}

func startPaymentConsumer(
	lc fx.Lifecycle,
	cfg config.Config,
	decoder commands.EventDecoder,
	reconciler commands.PaymentReconciler,
	logger *slog.Logger,
) error {
	if cfg.Events.Delivery != config.DeliveryAMQP {
		return nil
	}

	consumer, err := messaging.NewEventConsumer(cfg.AMQP, decoder, reconciler, logger)
	if err != nil {
		return err
	}

	background(lc, func(ctx context.Context) {
		defer func() { _ = consumer.Close() }()
		if err := consumer.Run(ctx); err != nil {
			logger.Error("payment consumer stopped", slog.String("error", err.Error()))
		}
	})
	return nil
}
