package bootstrap

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra/cache"
	"rental-booking/internal/infra/messaging"
	"rental-booking/internal/infra/stripegw"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

// PaymentModule provides the processor adapters and the optional brokers
// around them. Redis and Kafka are only dialled when configured.
var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			NewInvoiceGateway,
			fx.As(new(commands.InvoiceGateway), new(commands.ChargeGateway)),
		),
		fx.Annotate(
			NewEventDecoder,
			fx.As(new(commands.EventDecoder)),
		),
		NewEventDeduper,
		NewNotificationPublisher,
	),
)

func NewInvoiceGateway(cfg config.Config, logger *slog.Logger) *stripegw.Gateway {
	return stripegw.NewGateway(cfg.Stripe, logger)
}

func NewEventDecoder(cfg config.Config) *stripegw.Decoder {
	return stripegw.NewDecoder(cfg.Stripe.WebhookSecret)
}

func NewEventDeduper(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) commands.EventDeduper {
	if cfg.Redis.Addr == "" {
		logger.Info("event dedup disabled, REDIS_ADDR not set")
		return cache.NoopDeduper{}
	}

	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisDeduper(client, cfg.Redis.DedupTTL)
}

func NewNotificationPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) commands.NotificationPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("kafka brokers not set, notifications are logged only")
		return messaging.NewLogPublisher(logger)
	}

	publisher := messaging.NewKafkaPublisher(cfg.Kafka, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
