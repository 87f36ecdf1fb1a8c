package queries

import (
	"errors"
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrListOffersQueryIsNotConstructed = errors.New(
	"ListOffersQuery must be created via NewListOffersQuery constructor",
)

// ListOffersQuery is the admin moderation list of every offer, newest first.
type ListOffersQuery struct {
	actor services.Actor

	guard guard.ConstructorGuard
}

func NewListOffersQuery(actor services.Actor) ListOffersQuery {
	return ListOffersQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

func (q ListOffersQuery) Validate() error {
	return q.guard.Validate(ErrListOffersQueryIsNotConstructed)
}

func (q ListOffersQuery) Actor() services.Actor {
	return q.actor
}

// OfferDriver is the publishing driver as shown next to an offer. Names are
// empty when the driver no longer exists.
type OfferDriver struct {
	ID        kernel.UUID
	FirstName string
	LastName  string
	Email     string
}

type ListOffersQueryResponse struct {
	ID           kernel.UUID
	Driver       OfferDriver
	Route        offer.Route
	Capacity     offer.Capacity
	Status       offer.Status
	RequestCount int
	CreatedAt    time.Time
}
