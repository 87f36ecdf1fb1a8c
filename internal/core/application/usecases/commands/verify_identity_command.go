package commands

import (
	"errors"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrVerifyIdentityCommandIsNotConstructed = errors.New(
	"VerifyIdentityCommand must be created via NewVerifyIdentityCommand constructor",
)

type VerifyIdentityCommand struct {
	actor      services.Actor
	identityID kernel.UUID

	guard guard.ConstructorGuard
}

func NewVerifyIdentityCommand(actor services.Actor, identityID string) (VerifyIdentityCommand, error) {
	id, err := kernel.UUIDFromString(identityID)
	if err != nil {
		return VerifyIdentityCommand{}, err
	}
	return VerifyIdentityCommand{actor: actor, identityID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c VerifyIdentityCommand) Validate() error {
	return c.guard.Validate(ErrVerifyIdentityCommandIsNotConstructed)
}

func (c VerifyIdentityCommand) Actor() services.Actor {
	return c.actor
}

func (c VerifyIdentityCommand) IdentityID() kernel.UUID {
	return c.identityID
}
