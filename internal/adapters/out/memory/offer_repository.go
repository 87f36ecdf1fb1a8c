package memory

import (
	"context"
	"fmt"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/pkg/errs"
)

type offerRepository struct {
	uow *UnitOfWork
}

func (r *offerRepository) Add(_ context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	rec := offerRecord(aggregate)
	return r.uow.exec(func(s *state) error {
		if _, ok := s.offers[rec.ID]; ok {
			return fmt.Errorf("offer %s already stored", rec.ID)
		}
		s.offers[rec.ID] = rec
		return nil
	})
}

func (r *offerRepository) Get(_ context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var (
		rec offer.RestoreParams
		ok  bool
	)
	r.uow.store.read(func(s *state) {
		rec, ok = s.offers[id]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("offer", id.String())
	}
	return restoreOffer(rec)
}

func (r *offerRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	var ok bool
	r.uow.store.read(func(s *state) {
		_, ok = s.offers[id]
	})
	if !ok {
		return errs.NewObjectNotFoundError("offer", id.String())
	}

	return r.uow.exec(func(s *state) error {
		if _, ok := s.offers[id]; !ok {
			return errs.NewObjectNotFoundError("offer", id.String())
		}
		delete(s.offers, id)
		return nil
	})
}
