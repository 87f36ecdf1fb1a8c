package commands

import (
	"context"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
)

// VerifyIdentityCommandHandler marks an identity verified. Verifying twice is a no-op.
type VerifyIdentityCommandHandler struct {
	uowFactory IdentityUoWFactory
	policy     services.AccessPolicy
	clock      ports.Clock
}

func NewVerifyIdentityCommandHandler(uowFactory IdentityUoWFactory, policy services.AccessPolicy, clock ports.Clock) VerifyIdentityCommandHandler {
	return VerifyIdentityCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h VerifyIdentityCommandHandler) Handle(ctx context.Context, cmd VerifyIdentityCommand) (identity.Summary, error) {
	if err := cmd.Validate(); err != nil {
		return identity.Summary{}, err
	}
	if err := h.policy.Require(cmd.Actor(), services.ActionVerifyIdentity, services.Resource{}); err != nil {
		return identity.Summary{}, err
	}

	return updateIdentity(ctx, h.uowFactory, cmd.IdentityID(), func(target *identity.Identity) bool {
		return target.Verify(h.clock.Now())
	})
}

// updateIdentity loads, mutates and saves one identity. mutate reports
// whether anything changed; unchanged identities are not written.
func updateIdentity(
	ctx context.Context,
	uowFactory IdentityUoWFactory,
	id kernel.UUID,
	mutate func(*identity.Identity) bool,
) (identity.Summary, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return identity.Summary{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.IdentityRepository()
	target, err := repo.Get(ctx, id)
	if err != nil {
		return identity.Summary{}, err
	}

	if !mutate(target) {
		return target.Summary(), nil
	}

	if err = repo.Update(ctx, target); err != nil {
		return identity.Summary{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return identity.Summary{}, err
	}

	return target.Summary(), nil
}
