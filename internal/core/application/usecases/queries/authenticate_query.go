// Package queries contains the read operations: token validation, the
// caller's own profile, single requests and the admin read models.
//
// Queries that look up one aggregate go through the repositories. The admin
// lists and the dashboard read the tables directly with SQL.
package queries

import (
	"errors"
	"strings"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"
	"transportconnect/internal/pkg/guard"
)

var ErrAuthenticateQueryIsNotConstructed = errors.New(
	"AuthenticateQuery must be created via NewAuthenticateQuery constructor",
)

// AuthenticateQuery resolves a bearer token to the identity behind it.
//
// Example:
//
//	query, err := NewAuthenticateQuery(rawToken)
//	if err != nil {
//	    return err // errs.ErrInvalidToken
//	}
//	auth, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(auth.Actor.Role)
type AuthenticateQuery struct {
	token string

	guard guard.ConstructorGuard
}

func NewAuthenticateQuery(rawToken string) (AuthenticateQuery, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return AuthenticateQuery{}, errs.ErrInvalidToken
	}
	return AuthenticateQuery{token: rawToken, guard: guard.NewConstructorGuard()}, nil
}

func (q AuthenticateQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateQueryIsNotConstructed)
}

func (q AuthenticateQuery) Token() string {
	return q.token
}

// AuthenticateQueryResponse is the authenticated caller. Actor carries the
// role currently stored, not the one in the token.
type AuthenticateQueryResponse struct {
	Actor    services.Actor
	Identity identity.Summary
	Claims   ports.TokenClaims
}
