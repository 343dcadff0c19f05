//go:build unit

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"rental-booking/internal/domain/payment"
	"rental-booking/internal/usecase/commands"
	commandsmock "rental-booking/tests/mock/commands"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.acked = true
	return nil
}

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func delivery(ack *ackRecorder, body []byte) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, MessageId: "evt_1", Body: body}
}

func envelopeBody(t *testing.T, payload string) []byte {
	t.Helper()
	body, err := json.Marshal(envelope{
		EventID:    "evt_1",
		EventType:  "invoice.paid",
		ReceivedAt: time.Now().UTC(),
		Payload:    json.RawMessage(payload),
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestEventConsumer_Handle(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	payload := `{"id":"evt_1","type":"invoice.paid"}`
	ev := payment.InvoicePaid{Meta: payment.Meta{ID: "evt_1", Type: "invoice.paid"}, InvoiceID: "in_1"}

	newConsumer := func(t *testing.T) (*EventConsumer, *commandsmock.MockEventDecoder, *commandsmock.MockPaymentReconciler) {
		ctrl := gomock.NewController(t)
		decoder := commandsmock.NewMockEventDecoder(ctrl)
		reconciler := commandsmock.NewMockPaymentReconciler(ctrl)
		return &EventConsumer{
			retryDelay: time.Millisecond,
			decoder:    decoder,
			reconciler: reconciler,
			logger:     logger,
		}, decoder, reconciler
	}

	t.Run("applied events are acked", func(t *testing.T) {
		c, decoder, reconciler := newConsumer(t)
		ack := &ackRecorder{}

		decoder.EXPECT().Decode([]byte(payload)).Return(ev, nil)
		reconciler.EXPECT().Apply(gomock.Any(), ev).Return(commands.OutcomeApplied, nil)

		c.handle(ctx, delivery(ack, envelopeBody(t, payload)))
		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
	})

	t.Run("apply failure is requeued", func(t *testing.T) {
		c, decoder, reconciler := newConsumer(t)
		ack := &ackRecorder{}

		decoder.EXPECT().Decode(gomock.Any()).Return(ev, nil)
		reconciler.EXPECT().Apply(gomock.Any(), ev).Return(commands.OutcomeFailed, errors.New("db down"))

		c.handle(ctx, delivery(ack, envelopeBody(t, payload)))
		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("malformed envelope is dropped", func(t *testing.T) {
		c, _, _ := newConsumer(t)
		ack := &ackRecorder{}

		c.handle(ctx, delivery(ack, []byte(`{"event_id":""}`)))
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("undecodable payload is dropped", func(t *testing.T) {
		c, decoder, reconciler := newConsumer(t)
		ack := &ackRecorder{}

		decoder.EXPECT().Decode(gomock.Any()).Return(nil, errors.New("bad json"))
		reconciler.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)

		c.handle(ctx, delivery(ack, envelopeBody(t, payload)))
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})
}
