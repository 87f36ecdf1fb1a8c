package commands

import (
	"context"
	"errors"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"
)

// dummyComparer is implemented by hashers that can burn the same time as a
// real comparison when there is no digest to compare against.
type dummyComparer interface {
	CompareDummy(plain string)
}

// LoginCommandHandler exchanges credentials for a token.
//
// Unknown email and wrong password fail with the same errs.ErrInvalidCredentials.
// A correct password on an inactive account fails with errs.ErrAccountInactive.
type LoginCommandHandler struct {
	uowFactory IdentityUoWFactory
	hasher     identity.PasswordHasher
	tokens     ports.TokenService
}

func NewLoginCommandHandler(
	uowFactory IdentityUoWFactory,
	hasher identity.PasswordHasher,
	tokens ports.TokenService,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
	}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}

	found, err := h.uowFactory.Create().IdentityRepository().FindByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		if dc, ok := h.hasher.(dummyComparer); ok {
			dc.CompareDummy(cmd.Password())
		}
		return AuthResult{}, errs.ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}

	if !found.PasswordMatches(h.hasher, cmd.Password()) {
		return AuthResult{}, errs.ErrInvalidCredentials
	}
	if !found.IsActive() {
		return AuthResult{}, errs.ErrAccountInactive
	}

	token, err := h.tokens.Issue(found.ID(), found.Role())
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Identity: found.Summary(), Token: token}, nil
}
