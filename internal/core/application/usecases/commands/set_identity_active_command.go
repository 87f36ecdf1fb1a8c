package commands

import (
	"errors"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrSetIdentityActiveCommandIsNotConstructed = errors.New(
	"SetIdentityActiveCommand must be created via NewSetIdentityActiveCommand constructor",
)

// SetIdentityActiveCommand suspends or reactivates an account.
type SetIdentityActiveCommand struct {
	actor      services.Actor
	identityID kernel.UUID
	active     bool

	guard guard.ConstructorGuard
}

func NewSetIdentityActiveCommand(actor services.Actor, identityID string, active bool) (SetIdentityActiveCommand, error) {
	id, err := kernel.UUIDFromString(identityID)
	if err != nil {
		return SetIdentityActiveCommand{}, err
	}
	return SetIdentityActiveCommand{
		actor:      actor,
		identityID: id,
		active:     active,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SetIdentityActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetIdentityActiveCommandIsNotConstructed)
}

func (c SetIdentityActiveCommand) Actor() services.Actor {
	return c.actor
}

func (c SetIdentityActiveCommand) IdentityID() kernel.UUID {
	return c.identityID
}

func (c SetIdentityActiveCommand) Active() bool {
	return c.active
}
