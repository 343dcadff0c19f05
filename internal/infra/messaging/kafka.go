package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

var errEmptyNotification = errors.New("notification key and payload are required")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher sends outbox notifications keyed by booking id, so every
// notification for one booking lands on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

var _ commands.NotificationPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(cfg config.KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Error(fmt.Sprintf(msg, args...), slog.String("component", "kafka"))
		}),
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	if key == "" || len(payload) == 0 {
		return errEmptyNotification
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in when no broker is configured. Jobs are marked sent
// after being logged, so the outbox does not grow without bound.
type LogPublisher struct {
	logger *slog.Logger
}

var _ commands.NotificationPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, topic, key string, payload []byte) error {
	p.logger.Info("notification (no broker configured)",
		slog.String("topic", topic),
		slog.String("key", key),
		slog.String("payload", string(payload)))
	return nil
}
