package queries

import (
	"context"
	"errors"
	"fmt"

	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"
)

// AuthenticateQueryHandler validates tokens.
//
// Failures are checked in order: a bad, expired or revoked token is
// errs.ErrInvalidToken, a subject that no longer exists is
// errs.ErrIdentityNotFound, and a suspended account is errs.ErrAccountInactive.
type AuthenticateQueryHandler struct {
	tokens     ports.TokenService
	denylist   ports.TokenDenylist
	uowFactory ports.UnitOfWorkFactory
}

func NewAuthenticateQueryHandler(
	tokens ports.TokenService,
	denylist ports.TokenDenylist,
	uowFactory ports.UnitOfWorkFactory,
) AuthenticateQueryHandler {
	return AuthenticateQueryHandler{
		tokens:     tokens,
		denylist:   denylist,
		uowFactory: uowFactory,
	}
}

func (h AuthenticateQueryHandler) Handle(ctx context.Context, query AuthenticateQuery) (AuthenticateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AuthenticateQueryResponse{}, err
	}

	claims, err := h.tokens.Parse(query.Token())
	if err != nil {
		return AuthenticateQueryResponse{}, err
	}

	revoked, err := h.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return AuthenticateQueryResponse{}, fmt.Errorf("check token denylist: %w", err)
	}
	if revoked {
		return AuthenticateQueryResponse{}, fmt.Errorf("%w: token has been revoked", errs.ErrInvalidToken)
	}

	found, err := h.uowFactory.Create().IdentityRepository().Get(ctx, claims.Subject)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AuthenticateQueryResponse{}, fmt.Errorf("%w: %s", errs.ErrIdentityNotFound, claims.Subject)
	}
	if err != nil {
		return AuthenticateQueryResponse{}, err
	}

	if !found.IsActive() {
		return AuthenticateQueryResponse{}, errs.ErrAccountInactive
	}

	return AuthenticateQueryResponse{
		Actor:    services.Actor{ID: found.ID(), Role: found.Role()},
		Identity: found.Summary(),
		Claims:   claims,
	}, nil
}
