package memory

import (
	"context"
	"fmt"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"
)

type identityRepository struct {
	uow *UnitOfWork
}

func (r *identityRepository) Add(_ context.Context, aggregate *identity.Identity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	rec := identityRecord(aggregate)
	email := rec.Email.String()

	var taken bool
	r.uow.store.read(func(s *state) {
		_, taken = s.emails[email]
	})
	if taken {
		return duplicateEmail(email)
	}

	return r.uow.exec(func(s *state) error {
		if _, ok := s.emails[email]; ok {
			return duplicateEmail(email)
		}
		if _, ok := s.identities[rec.ID]; ok {
			return fmt.Errorf("identity %s already stored", rec.ID)
		}
		s.identities[rec.ID] = rec
		s.emails[email] = rec.ID
		return nil
	})
}

func (r *identityRepository) Update(_ context.Context, aggregate *identity.Identity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	rec := identityRecord(aggregate)

	return r.uow.exec(func(s *state) error {
		current, ok := s.identities[rec.ID]
		if !ok {
			return errs.NewObjectNotFoundError("identity", rec.ID.String())
		}
		rec.Email = current.Email
		rec.Role = current.Role
		rec.Rating = current.Rating
		rec.CompletedTransports = current.CompletedTransports
		rec.CreatedAt = current.CreatedAt
		s.identities[rec.ID] = rec
		return nil
	})
}

func (r *identityRepository) Get(_ context.Context, id kernel.UUID) (*identity.Identity, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var (
		rec identity.RestoreParams
		ok  bool
	)
	r.uow.store.read(func(s *state) {
		rec, ok = s.identities[id]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("identity", id.String())
	}
	return identity.Restore(rec)
}

func (r *identityRepository) FindByEmail(_ context.Context, email kernel.Email) (*identity.Identity, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var (
		rec identity.RestoreParams
		ok  bool
	)
	r.uow.store.read(func(s *state) {
		var id kernel.UUID
		if id, ok = s.emails[email.String()]; ok {
			rec = s.identities[id]
		}
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("identity", email.String())
	}
	return identity.Restore(rec)
}

func (r *identityRepository) IncrementCompletedTransports(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.uow.exec(func(s *state) error {
		current, ok := s.identities[id]
		if !ok {
			return errs.NewObjectNotFoundError("identity", id.String())
		}
		current.CompletedTransports++
		s.identities[id] = current
		return nil
	})
}

func duplicateEmail(email string) error {
	return fmt.Errorf("email %s: %w", email, errs.ErrDuplicateIdentity)
}
