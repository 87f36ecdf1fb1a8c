package commands

import (
	"errors"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand books cargo onto an offer on behalf of a sender.
type CreateRequestCommand struct {
	actor   services.Actor
	offerID kernel.UUID
	details request.Details

	guard guard.ConstructorGuard
}

func NewCreateRequestCommand(actor services.Actor, offerID string, details request.Details) (CreateRequestCommand, error) {
	id, err := kernel.UUIDFromString(offerID)
	if err != nil {
		return CreateRequestCommand{}, err
	}
	return CreateRequestCommand{
		actor:   actor,
		offerID: id,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) Actor() services.Actor {
	return c.actor
}

func (c CreateRequestCommand) OfferID() kernel.UUID {
	return c.offerID
}

func (c CreateRequestCommand) Details() request.Details {
	return c.details
}
