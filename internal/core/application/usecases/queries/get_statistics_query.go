package queries

import (
	"errors"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

// RecentActivityLimit is how many of the newest identities and offers the dashboard shows.
const RecentActivityLimit = 5

var ErrGetStatisticsQueryIsNotConstructed = errors.New(
	"GetStatisticsQuery must be created via NewGetStatisticsQuery constructor",
)

// GetStatisticsQuery builds the admin dashboard.
type GetStatisticsQuery struct {
	actor services.Actor

	guard guard.ConstructorGuard
}

func NewGetStatisticsQuery(actor services.Actor) GetStatisticsQuery {
	return GetStatisticsQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

func (q GetStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsQueryIsNotConstructed)
}

func (q GetStatisticsQuery) Actor() services.Actor {
	return q.actor
}

type IdentityStatistics struct {
	Total   int
	Drivers int
	Senders int
	Admins  int
	Active  int
}

type OfferStatistics struct {
	Total  int
	Active int
}

// RequestStatistics counts requests. Completed means delivered.
// AcceptanceRate is the whole-number percentage of requests a driver accepted,
// counting those that have since moved on to in_transit or delivered.
type RequestStatistics struct {
	Total          int
	Pending        int
	Completed      int
	AcceptanceRate int
	ByStatus       map[request.Status]int
}

type GetStatisticsQueryResponse struct {
	Identities       IdentityStatistics
	Offers           OfferStatistics
	Requests         RequestStatistics
	RecentIdentities []identity.Summary
	RecentOffers     []ListOffersQueryResponse
}
