package commands

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/payment"
	"rental-booking/internal/pkg/errs"
)

//go:generate mockgen -source=intake.go -destination=../../../tests/mock/commands/intake_mock.go -package=commandsmock

// PaymentEventIntake is the webhook entry point. A returned error wrapping
// errs.ErrInvalidPaymentEvent means the payload was rejected before anything
// changed; any other error means it must be redelivered.
type PaymentEventIntake interface {
	Accept(ctx context.Context, payload []byte, signature string) (payment.Event, error)
}

type paymentEventIntakeImpl struct {
	decoder EventDecoder
	sink    EventSink
	logger  *slog.Logger
}

func NewPaymentEventIntake(decoder EventDecoder, sink EventSink, logger *slog.Logger) PaymentEventIntake {
	return &paymentEventIntakeImpl{
		decoder: decoder,
		sink:    sink,
		logger:  logger,
	}
}

func (i *paymentEventIntakeImpl) Accept(ctx context.Context, payload []byte, signature string) (payment.Event, error) {
	ev, err := i.decoder.Verify(payload, signature)
	if err != nil {
		i.logger.Warn("payment event rejected", slog.String("error", err.Error()))
		return nil, errs.Mark(err, errs.ErrInvalidPaymentEvent)
	}

	if err := i.sink.Deliver(ctx, ev, payload); err != nil {
		return ev, errs.Wrap(err, "deliver payment event "+ev.EventID())
	}
	return ev, nil
}

// InlineSink applies events on the request goroutine.
type InlineSink struct {
	reconciler PaymentReconciler
}

func NewInlineSink(reconciler PaymentReconciler) *InlineSink {
	return &InlineSink{reconciler: reconciler}
}

func (s *InlineSink) Deliver(ctx context.Context, ev payment.Event, _ []byte) error {
	_, err := s.reconciler.Apply(ctx, ev)
	return err
}
