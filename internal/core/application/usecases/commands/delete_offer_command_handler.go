package commands

import (
	"context"

	"transportconnect/internal/core/domain/services"
)

// DeleteOfferCommandHandler is an admin moderation action.
type DeleteOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	policy     services.AccessPolicy
}

func NewDeleteOfferCommandHandler(uowFactory OfferUoWFactory, policy services.AccessPolicy) DeleteOfferCommandHandler {
	return DeleteOfferCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h DeleteOfferCommandHandler) Handle(ctx context.Context, cmd DeleteOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Require(cmd.Actor(), services.ActionDeleteOffer, services.Resource{}); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OfferRepository().Delete(ctx, cmd.OfferID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
