// Package ports defines the contracts between the application core and its
// adapters: persistence, tokens, password hashing, time and event delivery.
package ports

import (
	"context"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
)

// IdentityRepository is the credential store.
type IdentityRepository interface {
	// Add persists a new identity. Returns an error wrapping
	// errs.ErrDuplicateIdentity when the email is already registered.
	Add(ctx context.Context, aggregate *identity.Identity) error

	// Update persists profile, digest and flag changes. Counters owned by the
	// lifecycle engine are not written.
	Update(ctx context.Context, aggregate *identity.Identity) error

	// Get returns *errs.ObjectNotFoundError when no identity has id.
	Get(ctx context.Context, id kernel.UUID) (*identity.Identity, error)

	// FindByEmail returns *errs.ObjectNotFoundError when no identity has email.
	FindByEmail(ctx context.Context, email kernel.Email) (*identity.Identity, error)

	// IncrementCompletedTransports atomically adds one to the counter.
	IncrementCompletedTransports(ctx context.Context, id kernel.UUID) error
}
