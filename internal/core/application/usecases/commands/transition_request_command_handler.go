package commands

import (
	"context"

	"transportconnect/internal/core/domain/model/outbox"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
)

// TransitionRequestCommandHandler is the lifecycle engine's entry point.
//
// In one unit of work it loads the request, authorizes the actor, applies the
// transition, writes the request back with a compare-and-swap on the status
// it read, bumps the driver's completed transports on delivery and records a
// StatusChanged event in the outbox. A concurrent writer that got there first
// makes the swap fail with errs.ErrInvalidTransition and nothing is written.
//
// Submitting the current status returns the request unchanged without writing.
type TransitionRequestCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	clock      ports.Clock
}

func NewTransitionRequestCommandHandler(uowFactory UoWFactory, policy services.AccessPolicy, clock ports.Clock) TransitionRequestCommandHandler {
	return TransitionRequestCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h TransitionRequestCommandHandler) Handle(ctx context.Context, cmd TransitionRequestCommand) (*request.TransportRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	current, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	resource := services.RequestResource(current, cmd.Target())
	if err = h.policy.Require(cmd.Actor(), services.ActionTransitionRequest, resource); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	expected := current.Status()
	event, changed, err := current.Transition(cmd.Actor().ID, cmd.Target(), now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return current, nil
	}

	if err = requestRepo.Update(ctx, current, expected); err != nil {
		return nil, err
	}

	if event.To == request.StatusDelivered {
		if err = uow.IdentityRepository().IncrementCompletedTransports(ctx, current.DriverID()); err != nil {
			return nil, err
		}
	}

	message, err := outbox.NewMessage(request.StatusChangedEventType, current.ID(), event, now)
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}
