package commands

import (
	"context"

	"transportconnect/internal/core/domain/model/outbox"
	"transportconnect/internal/core/ports"
)

// RelayResult counts what one relay pass did.
type RelayResult struct {
	Published int
	Failed    int
}

// RelayOutboxCommandHandler hands pending messages to the publisher and
// records the outcome of each. A publish failure is stored on the message and
// retried on later passes until outbox.MaxAttempts is reached.
//
// Publishing happens outside any transaction. Each outcome is written in its
// own short unit of work, so a slow broker never holds a write lock and a
// message already published is not sent again when a later update fails.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher, clock ports.Clock) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	messages, err := h.uowFactory.Create().OutboxRepository().ListPending(ctx, cmd.BatchSize())
	if err != nil {
		return RelayResult{}, err
	}

	var result RelayResult
	for _, message := range messages {
		if pubErr := h.publisher.Publish(ctx, message); pubErr != nil {
			message.MarkFailed(pubErr)
			result.Failed++
		} else {
			message.MarkPublished(h.clock.Now())
			result.Published++
		}

		if err = h.record(ctx, message); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (h RelayOutboxCommandHandler) record(ctx context.Context, message *outbox.Message) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().Update(ctx, message); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
