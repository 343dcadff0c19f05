package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/payment"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/metrics"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeUnmatched Outcome = "unmatched"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeFailed    Outcome = "failed"
)

//go:generate mockgen -source=reconcile.go -destination=../../../tests/mock/commands/reconcile_mock.go -package=commandsmock

// PaymentReconciler applies processor notifications to the booking ledger.
// Application is a last-write-wins projection of the processor's status:
// events may arrive duplicated or out of order and the last one applied wins.
// A nil error means the event may be acknowledged.
type PaymentReconciler interface {
	Apply(ctx context.Context, ev payment.Event) (Outcome, error)
}

type ReconcilerConfig struct {
	NotificationTopic string
}

type paymentReconcilerImpl struct {
	uow     shared.UnitOfWork
	gateway InvoiceGateway
	dedup   EventDeduper
	clock   clock.Clock
	cfg     ReconcilerConfig
	logger  *slog.Logger
}

func NewPaymentReconciler(
	uow shared.UnitOfWork,
	gateway InvoiceGateway,
	dedup EventDeduper,
	clock clock.Clock,
	cfg ReconcilerConfig,
	logger *slog.Logger,
) PaymentReconciler {
	return &paymentReconcilerImpl{
		uow:     uow,
		gateway: gateway,
		dedup:   dedup,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

func (r *paymentReconcilerImpl) Apply(ctx context.Context, ev payment.Event) (Outcome, error) {
	log := r.logger.With(
		slog.String("event_id", ev.EventID()),
		slog.String("event_type", ev.ProcessorType()),
		slog.String("category", ev.Category().String()),
	)

	if r.alreadyApplied(ctx, log, ev.EventID()) {
		metrics.IncPaymentEvent(ev.Category().String(), string(OutcomeDuplicate))
		log.Info("payment event already applied")
		return OutcomeDuplicate, nil
	}

	outcome, err := r.apply(ctx, ev)
	if err != nil {
		metrics.IncPaymentEvent(ev.Category().String(), string(OutcomeFailed))
		log.Error("payment event not applied", slog.String("error", err.Error()))
		return OutcomeFailed, err
	}

	metrics.IncPaymentEvent(ev.Category().String(), string(outcome))
	switch outcome {
	case OutcomeUnmatched:
		log.Info("no booking for payment event")
	case OutcomeIgnored:
		log.Info("payment event ignored")
	default:
		log.Info("payment event reconciled", slog.String("outcome", string(outcome)))
	}

	// An unmatched event may belong to a booking whose approval has not
	// committed yet, so its redelivery must still be applied.
	if ev.EventID() != "" && outcome != OutcomeUnmatched {
		if err := r.dedup.Remember(ctx, ev.EventID()); err != nil {
			log.Warn("failed to record applied event", slog.String("error", err.Error()))
		}
	}
	return outcome, nil
}

// A dedup failure counts as "not seen"; reapplying is harmless.
func (r *paymentReconcilerImpl) alreadyApplied(ctx context.Context, log *slog.Logger, eventID string) bool {
	if eventID == "" {
		return false
	}
	seen, err := r.dedup.Seen(ctx, eventID)
	if err != nil {
		log.Warn("event dedup lookup failed", slog.String("error", err.Error()))
		return false
	}
	return seen
}

func (r *paymentReconcilerImpl) apply(ctx context.Context, ev payment.Event) (Outcome, error) {
	switch e := ev.(type) {
	case payment.InvoicePaid:
		return r.applyInvoiceStatus(ctx, byInvoiceID(e.InvoiceID), booking.InvoiceStatusPaid)
	case payment.InvoicePaymentFailed:
		return r.applyInvoiceStatus(ctx, byInvoiceID(e.InvoiceID), booking.InvoiceStatusFailed)
	case payment.PaymentIntentSucceeded:
		return r.applyInvoiceStatus(ctx, byPaymentIntentID(e.PaymentIntentID), booking.InvoiceStatusPaid)
	case payment.PaymentIntentFailed:
		return r.applyInvoiceStatus(ctx, byPaymentIntentID(e.PaymentIntentID), booking.InvoiceStatusFailed)
	case payment.SubscriptionStatusChanged:
		return r.applySubscriptionStatus(ctx, e)
	case payment.InvoiceCreated:
		return r.keepDraft(ctx, e)
	default:
		return OutcomeIgnored, nil
	}
}

type bookingFinder func(ctx context.Context, ledger shared.BookingRepository) (*booking.Booking, error)

func byInvoiceID(id string) bookingFinder {
	return func(ctx context.Context, ledger shared.BookingRepository) (*booking.Booking, error) {
		return ledger.FindByInvoiceIDForUpdate(ctx, id)
	}
}

func byPaymentIntentID(id string) bookingFinder {
	return func(ctx context.Context, ledger shared.BookingRepository) (*booking.Booking, error) {
		return ledger.FindByPaymentIntentIDForUpdate(ctx, id)
	}
}

func (r *paymentReconcilerImpl) applyInvoiceStatus(
	ctx context.Context,
	find bookingFinder,
	status booking.InvoiceStatus,
) (Outcome, error) {
	var outcome Outcome
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := find(ctx, tx.Bookings())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				outcome = OutcomeUnmatched
				return nil
			}
			return err
		}

		now := r.clock.Now()
		changed, err := b.ApplyInvoiceStatus(status, now)
		if err != nil {
			return err
		}
		if !changed {
			outcome = OutcomeUnchanged
			return nil
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}

		if status == booking.InvoiceStatusFailed {
			if err := r.enqueue(ctx, tx, shared.NotificationInvoicePaymentFailed, b, status.String(), now); err != nil {
				return err
			}
		}
		outcome = OutcomeApplied
		return nil
	})
	return outcome, err
}

func (r *paymentReconcilerImpl) applySubscriptionStatus(ctx context.Context, e payment.SubscriptionStatusChanged) (Outcome, error) {
	if e.LatestInvoiceID == "" {
		return OutcomeUnmatched, nil
	}

	var outcome Outcome
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByInvoiceIDForUpdate(ctx, e.LatestInvoiceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				outcome = OutcomeUnmatched
				return nil
			}
			return err
		}

		now := r.clock.Now()
		if !b.ApplySubscriptionStatus(e.Status, now) {
			outcome = OutcomeUnchanged
			return nil
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}

		if booking.IsDelinquentSubscriptionStatus(e.Status) {
			if err := r.enqueue(ctx, tx, shared.NotificationSubscriptionDelinquent, b, e.Status, now); err != nil {
				return err
			}
		}
		outcome = OutcomeApplied
		return nil
	})
	return outcome, err
}

// Only drafts are held back; touching a finalized invoice would change how it is collected.
func (r *paymentReconcilerImpl) keepDraft(ctx context.Context, e payment.InvoiceCreated) (Outcome, error) {
	if !e.Draft || e.InvoiceID == "" {
		return OutcomeIgnored, nil
	}
	if err := r.gateway.KeepDraft(ctx, e.InvoiceID); err != nil {
		return OutcomeFailed, externalFailure(err, "keep invoice "+e.InvoiceID+" in draft")
	}
	return OutcomeApplied, nil
}

type notificationPayload struct {
	Kind        shared.NotificationKind `json:"kind"`
	BookingID   uuid.UUID               `json:"booking_id"`
	TenantID    uuid.UUID               `json:"tenant_id"`
	ApartmentID uuid.UUID               `json:"apartment_id"`
	InvoiceID   *string                 `json:"invoice_id,omitempty"`
	Status      string                  `json:"status"`
	OccurredAt  time.Time               `json:"occurred_at"`
}

func (r *paymentReconcilerImpl) enqueue(
	ctx context.Context,
	tx shared.Tx,
	kind shared.NotificationKind,
	b *booking.Booking,
	status string,
	now time.Time,
) error {
	payload, err := json.Marshal(notificationPayload{
		Kind:        kind,
		BookingID:   b.ID(),
		TenantID:    b.TenantID(),
		ApartmentID: b.ApartmentID(),
		InvoiceID:   b.InvoiceID(),
		Status:      status,
		OccurredAt:  now,
	})
	if err != nil {
		return err
	}

	return tx.Notifications().CreateJob(ctx, shared.NotificationJob{
		ID:        uuid.New(),
		Kind:      kind,
		Topic:     r.cfg.NotificationTopic,
		Key:       b.ID().String(),
		Payload:   payload,
		RunAt:     now,
		CreatedAt: now,
	})
}
