package queries

import (
	"errors"

	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrGetMeQueryIsNotConstructed = errors.New(
	"GetMeQuery must be created via NewGetMeQuery constructor",
)

// GetMeQuery reads the caller's own profile.
type GetMeQuery struct {
	actor services.Actor

	guard guard.ConstructorGuard
}

func NewGetMeQuery(actor services.Actor) (GetMeQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return GetMeQuery{}, err
	}
	return GetMeQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMeQuery) Validate() error {
	return q.guard.Validate(ErrGetMeQueryIsNotConstructed)
}

func (q GetMeQuery) Actor() services.Actor {
	return q.actor
}
