package ports

import (
	"context"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"
)

type RequestRepository interface {
	Add(ctx context.Context, aggregate *request.TransportRequest) error

	// Get returns *errs.ObjectNotFoundError when no request has id.
	Get(ctx context.Context, id kernel.UUID) (*request.TransportRequest, error)

	// Update writes aggregate only if the stored status still equals expected.
	// A lost race returns an error wrapping errs.ErrInvalidTransition.
	Update(ctx context.Context, aggregate *request.TransportRequest, expected request.Status) error
}
