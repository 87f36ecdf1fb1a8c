package memory

import (
	"context"
	"fmt"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/pkg/errs"
)

type requestRepository struct {
	uow *UnitOfWork
}

func (r *requestRepository) Add(_ context.Context, aggregate *request.TransportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	rec := requestRecord(aggregate)
	return r.uow.exec(func(s *state) error {
		if _, ok := s.requests[rec.ID]; ok {
			return fmt.Errorf("transport request %s already stored", rec.ID)
		}
		s.requests[rec.ID] = rec
		return nil
	})
}

func (r *requestRepository) Get(_ context.Context, id kernel.UUID) (*request.TransportRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var (
		rec request.RestoreParams
		ok  bool
	)
	r.uow.store.read(func(s *state) {
		rec, ok = s.requests[id]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("transport request", id.String())
	}
	return request.Restore(rec)
}

// Update checks expected against the committed status when the write is
// applied, so of two transactions that read the same status only the first
// to commit wins.
func (r *requestRepository) Update(_ context.Context, aggregate *request.TransportRequest, expected request.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	rec := requestRecord(aggregate)
	return r.uow.exec(func(s *state) error {
		current, ok := s.requests[rec.ID]
		if !ok {
			return errs.NewObjectNotFoundError("transport request", rec.ID.String())
		}
		if current.Status != expected {
			return fmt.Errorf("transport request %s is %s, not %s: %w", rec.ID, current.Status, expected, errs.ErrInvalidTransition)
		}
		s.requests[rec.ID] = rec
		return nil
	})
}
