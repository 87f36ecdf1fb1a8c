package memory

import (
	"context"

	"transportconnect/internal/core/ports"
)

// UnitOfWork buffers writes between Begin and Commit. It is not safe for
// concurrent use; create one per operation.
type UnitOfWork struct {
	store  *Store
	active bool
	ops    []op
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.ops = nil
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	ops := u.ops
	u.active, u.ops = false, nil
	return u.store.apply(ops)
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active, u.ops = false, nil
	return nil
}

func (u *UnitOfWork) exec(o op) error {
	if u.active {
		u.ops = append(u.ops, o)
		return nil
	}
	return u.store.apply([]op{o})
}

func (u *UnitOfWork) IdentityRepository() ports.IdentityRepository {
	return &identityRepository{uow: u}
}

func (u *UnitOfWork) OfferRepository() ports.OfferRepository {
	return &offerRepository{uow: u}
}

func (u *UnitOfWork) RequestRepository() ports.RequestRepository {
	return &requestRepository{uow: u}
}

func (u *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &outboxRepository{uow: u}
}
