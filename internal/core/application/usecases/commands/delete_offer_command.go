package commands

import (
	"errors"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrDeleteOfferCommandIsNotConstructed = errors.New(
	"DeleteOfferCommand must be created via NewDeleteOfferCommand constructor",
)

type DeleteOfferCommand struct {
	actor   services.Actor
	offerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOfferCommand(actor services.Actor, offerID string) (DeleteOfferCommand, error) {
	id, err := kernel.UUIDFromString(offerID)
	if err != nil {
		return DeleteOfferCommand{}, err
	}
	return DeleteOfferCommand{actor: actor, offerID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOfferCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOfferCommandIsNotConstructed)
}

func (c DeleteOfferCommand) Actor() services.Actor {
	return c.actor
}

func (c DeleteOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}
