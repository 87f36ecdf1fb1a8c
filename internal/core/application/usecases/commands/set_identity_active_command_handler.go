package commands

import (
	"context"
	"errors"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"
)

var ErrCannotDeactivateSelf = errs.NewValueIsInvalidErrorWithCause("isActive", errors.New("admins cannot deactivate their own account"))

type SetIdentityActiveCommandHandler struct {
	uowFactory IdentityUoWFactory
	policy     services.AccessPolicy
	clock      ports.Clock
}

func NewSetIdentityActiveCommandHandler(uowFactory IdentityUoWFactory, policy services.AccessPolicy, clock ports.Clock) SetIdentityActiveCommandHandler {
	return SetIdentityActiveCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h SetIdentityActiveCommandHandler) Handle(ctx context.Context, cmd SetIdentityActiveCommand) (identity.Summary, error) {
	if err := cmd.Validate(); err != nil {
		return identity.Summary{}, err
	}
	if err := h.policy.Require(cmd.Actor(), services.ActionSetIdentityActive, services.Resource{}); err != nil {
		return identity.Summary{}, err
	}
	if !cmd.Active() && cmd.Actor().ID.IsEqual(cmd.IdentityID()) {
		return identity.Summary{}, ErrCannotDeactivateSelf
	}

	return updateIdentity(ctx, h.uowFactory, cmd.IdentityID(), func(target *identity.Identity) bool {
		return target.SetActive(cmd.Active(), h.clock.Now())
	})
}
