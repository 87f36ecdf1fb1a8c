package ports

import (
	"context"

	"transportconnect/internal/core/domain/model/outbox"
)

type OutboxRepository interface {
	Add(ctx context.Context, message *outbox.Message) error

	// ListPending returns up to limit pending messages, oldest first.
	ListPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	// Update persists status, attempts and error fields.
	Update(ctx context.Context, message *outbox.Message) error
}

// EventPublisher delivers outbox messages to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, message *outbox.Message) error
}
