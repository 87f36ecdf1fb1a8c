package commands

import (
	"errors"

	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrCreateOfferCommandIsNotConstructed = errors.New(
	"CreateOfferCommand must be created via NewCreateOfferCommand constructor",
)

// CreateOfferCommand publishes a driver's transport offer. Field rules are
// enforced by offer.NewOffer when the handler runs.
type CreateOfferCommand struct {
	actor    services.Actor
	route    offer.Route
	capacity offer.Capacity

	guard guard.ConstructorGuard
}

func NewCreateOfferCommand(actor services.Actor, route offer.Route, capacity offer.Capacity) (CreateOfferCommand, error) {
	if err := actor.ID.Validate(); err != nil {
		return CreateOfferCommand{}, err
	}
	return CreateOfferCommand{
		actor:    actor,
		route:    route,
		capacity: capacity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOfferCommand) Validate() error {
	return c.guard.Validate(ErrCreateOfferCommandIsNotConstructed)
}

func (c CreateOfferCommand) Actor() services.Actor {
	return c.actor
}

func (c CreateOfferCommand) Route() offer.Route {
	return c.route
}

func (c CreateOfferCommand) Capacity() offer.Capacity {
	return c.capacity
}
