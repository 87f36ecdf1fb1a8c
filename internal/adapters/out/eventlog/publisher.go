// Package eventlog is the default ports.EventPublisher. It writes each relayed
// outbox message to the structured log, where downstream collectors pick it up.
package eventlog

import (
	"context"

	"transportconnect/internal/core/domain/model/outbox"

	"go.uber.org/zap"
)

type Publisher struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger.With(zap.String("component", "event_publisher"))}
}

func (p *Publisher) Publish(_ context.Context, message *outbox.Message) error {
	p.logger.Info("domain event",
		zap.String("event_id", message.ID().String()),
		zap.String("event_type", message.EventType()),
		zap.String("aggregate_id", message.AggregateID().String()),
		zap.ByteString("payload", message.Payload()),
		zap.Time("created_at", message.CreatedAt()),
	)
	return nil
}
