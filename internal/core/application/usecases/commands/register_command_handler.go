package commands

import (
	"context"
	"errors"
	"fmt"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"
)

// RegisterCommandHandler creates identities and issues their first token.
//
// Example:
//
//	handler := NewRegisterCommandHandler(uowFactory, hasher, tokens, clock)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrDuplicateIdentity) {
//	    // email taken
//	}
type RegisterCommandHandler struct {
	uowFactory IdentityUoWFactory
	hasher     identity.PasswordHasher
	tokens     ports.TokenService
	clock      ports.Clock
}

func NewRegisterCommandHandler(
	uowFactory IdentityUoWFactory,
	hasher identity.PasswordHasher,
	tokens ports.TokenService,
	clock ports.Clock,
) RegisterCommandHandler {
	return RegisterCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
		clock:      clock,
	}
}

// Handle hashes outside the transaction, then checks the email and stores the
// identity. The store's unique index settles races between two sign-ups.
func (h RegisterCommandHandler) Handle(ctx context.Context, cmd RegisterCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}

	now := h.clock.Now()
	created, err := identity.Register(kernel.NewUUID(), cmd.Registration(), h.hasher, now)
	if err != nil {
		return AuthResult{}, err
	}
	if cmd.Verified() {
		created.Verify(now)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AuthResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.IdentityRepository()
	_, err = repo.FindByEmail(ctx, cmd.Email())
	switch {
	case err == nil:
		return AuthResult{}, fmt.Errorf("email %s: %w", cmd.Email(), errs.ErrDuplicateIdentity)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return AuthResult{}, err
	}

	if err = repo.Add(ctx, created); err != nil {
		return AuthResult{}, err
	}

	token, err := h.tokens.Issue(created.ID(), created.Role())
	if err != nil {
		return AuthResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Identity: created.Summary(), Token: token}, nil
}
