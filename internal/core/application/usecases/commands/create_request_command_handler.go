package commands

import (
	"context"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
)

// CreateRequestCommandHandler opens a pending request against an active offer.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	policy     services.AccessPolicy
	clock      ports.Clock
}

func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory, policy services.AccessPolicy, clock ports.Clock) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (*request.TransportRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Require(cmd.Actor(), services.ActionCreateRequest, services.Resource{}); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return nil, err
	}

	created, err := request.NewTransportRequest(kernel.NewUUID(), target, cmd.Actor().ID, cmd.Details(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.RequestRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
