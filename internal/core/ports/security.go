package ports

import (
	"context"
	"time"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
)

// Token is a signed bearer credential.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// TokenClaims is what a valid token asserts.
type TokenClaims struct {
	Subject   kernel.UUID
	Role      identity.Role
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenService interface {
	Issue(subject kernel.UUID, role identity.Role) (Token, error)

	// Parse verifies signature and expiry. Any failure wraps errs.ErrInvalidToken.
	Parse(raw string) (TokenClaims, error)
}

// TokenDenylist holds revoked token IDs until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}
