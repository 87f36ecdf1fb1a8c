package commands

import (
	"context"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
)

type CreateOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	policy     services.AccessPolicy
	clock      ports.Clock
}

func NewCreateOfferCommandHandler(uowFactory OfferUoWFactory, policy services.AccessPolicy, clock ports.Clock) CreateOfferCommandHandler {
	return CreateOfferCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h CreateOfferCommandHandler) Handle(ctx context.Context, cmd CreateOfferCommand) (*offer.Offer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Require(cmd.Actor(), services.ActionCreateOffer, services.Resource{}); err != nil {
		return nil, err
	}

	created, err := offer.NewOffer(kernel.NewUUID(), cmd.Actor().ID, cmd.Route(), cmd.Capacity(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OfferRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
