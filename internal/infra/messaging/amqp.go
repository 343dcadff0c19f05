package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rental-booking/internal/domain/payment"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	errPublishNacked    = errors.New("broker did not confirm payment event")
	errDeliveriesClosed = errors.New("amqp delivery channel closed")
)

func dial(cfg config.AMQPConfig) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareTopology(ch, cfg); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// Publisher and consumer declare the same topology so either may start first.
func declareTopology(ch *amqp.Channel, cfg config.AMQPConfig) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", cfg.RoutingKey, err)
	}
	return nil
}

// EventPublisher is the broker-backed commands.EventSink. Deliver returns only
// after the broker confirms the message, so a 2xx to the processor means the
// event is durable.
type EventPublisher struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	exchange   string
	routingKey string
	mu         sync.Mutex
	logger     *slog.Logger
}

var _ commands.EventSink = (*EventPublisher)(nil)

func NewEventPublisher(cfg config.AMQPConfig, logger *slog.Logger) (*EventPublisher, error) {
	conn, ch, err := dial(cfg)
	if err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}
	return &EventPublisher{
		conn:       conn,
		ch:         ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

func (p *EventPublisher) Deliver(ctx context.Context, ev payment.Event, payload []byte) error {
	body, err := json.Marshal(envelope{
		EventID:    ev.EventID(),
		EventType:  ev.ProcessorType(),
		ReceivedAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}

	// A channel is not safe for concurrent publishes in confirm mode.
	p.mu.Lock()
	defer p.mu.Unlock()

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID(),
		Type:         ev.ProcessorType(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish payment event: %w", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await publish confirm: %w", err)
	}
	if !acked {
		return errPublishNacked
	}

	p.logger.Debug("payment event queued",
		slog.String("event_id", ev.EventID()),
		slog.String("event_type", ev.ProcessorType()))
	return nil
}

func (p *EventPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// EventConsumer applies queued payment events. Malformed messages are dropped;
// messages that fail to apply are requeued after RetryDelay.
type EventConsumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	queue      string
	retryDelay time.Duration
	decoder    commands.EventDecoder
	reconciler commands.PaymentReconciler
	logger     *slog.Logger
}

func NewEventConsumer(
	cfg config.AMQPConfig,
	decoder commands.EventDecoder,
	reconciler commands.PaymentReconciler,
	logger *slog.Logger,
) (*EventConsumer, error) {
	conn, ch, err := dial(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Prefetch > 0 {
		if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("set qos: %w", err)
		}
	}
	return &EventConsumer{
		conn:       conn,
		ch:         ch,
		queue:      cfg.Queue,
		retryDelay: cfg.RetryDelay,
		decoder:    decoder,
		reconciler: reconciler,
		logger:     logger,
	}, nil
}

// Run blocks until ctx is cancelled or the broker closes the channel.
func (c *EventConsumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errDeliveriesClosed
			}
			c.handle(ctx, d)
		}
	}
}

func (c *EventConsumer) handle(ctx context.Context, d amqp.Delivery) {
	env, err := decodeEnvelope(d.Body)
	if err != nil {
		c.logger.Error("dropping malformed payment message",
			slog.String("message_id", d.MessageId),
			slog.String("error", err.Error()))
		_ = d.Nack(false, false)
		return
	}

	log := c.logger.With(slog.String("event_id", env.EventID), slog.String("event_type", env.EventType))

	ev, err := c.decoder.Decode(env.Payload)
	if err != nil {
		log.Error("dropping undecodable payment event", slog.String("error", err.Error()))
		_ = d.Nack(false, false)
		return
	}

	if _, err := c.reconciler.Apply(ctx, ev); err != nil {
		log.Warn("payment event requeued", slog.Duration("retry_delay", c.retryDelay), slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
		case <-time.After(c.retryDelay):
		}
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
}

func (c *EventConsumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
