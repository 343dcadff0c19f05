package components

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra/messaging"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewMonthlyChargeCalculator,
		fx.As(new(booking.ChargeCalculator)),
	),
	func(clock clock.Clock, calc booking.ChargeCalculator) *booking.Services {
		return &booking.Services{
			Clock:            clock,
			ChargeCalculator: calc,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAvailabilityChecker,
		NewBiller,
		commands.NewBookingCommands,
		func(cfg config.Config) commands.ReconcilerConfig {
			return commands.ReconcilerConfig{NotificationTopic: cfg.Kafka.NotificationTopic}
		},
		commands.NewPaymentReconciler,
		NewEventSink,
		commands.NewPaymentEventIntake,
		func(cfg config.Config) commands.RelayConfig {
			return commands.RelayConfig{
				BatchSize:   cfg.Outbox.BatchSize,
				MaxAttempts: cfg.Outbox.MaxAttempts,
			}
		},
		commands.NewNotificationRelay,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// NewBiller selects how owner approval bills a booking: a sent invoice by
// default, or an off-session charge when STRIPE_BILLING_MODE=direct_charge.
func NewBiller(
	cfg config.Config,
	invoices commands.InvoiceGateway,
	charges commands.ChargeGateway,
	logger *slog.Logger,
) commands.Biller {
	if cfg.Stripe.Billing == config.BillingDirectCharge {
		logger.Info("owner approval charges the saved payment method directly")
		return commands.NewDirectCharger(charges, logger)
	}
	return commands.NewInvoiceIssuer(invoices, logger)
}

// NewEventSink applies webhook events inline unless EVENTS_DELIVERY=amqp, in
// which case they are queued and the consumer worker applies them.
func NewEventSink(
	lc fx.Lifecycle,
	cfg config.Config,
	reconciler commands.PaymentReconciler,
	logger *slog.Logger,
) (commands.EventSink, error) {
	if cfg.Events.Delivery != config.DeliveryAMQP {
		return commands.NewInlineSink(reconciler), nil
	}

	publisher, err := messaging.NewEventPublisher(cfg.AMQP, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
