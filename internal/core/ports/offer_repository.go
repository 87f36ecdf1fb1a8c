package ports

import (
	"context"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
)

type OfferRepository interface {
	Add(ctx context.Context, aggregate *offer.Offer) error

	// Get returns *errs.ObjectNotFoundError when no offer has id.
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// Delete returns *errs.ObjectNotFoundError when no offer has id.
	Delete(ctx context.Context, id kernel.UUID) error
}
