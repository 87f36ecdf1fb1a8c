package queries

import (
	"errors"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

// GetRequestQuery reads one transport request. Only its two parties and
// admins may see it.
type GetRequestQuery struct {
	actor     services.Actor
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRequestQuery(actor services.Actor, requestID string) (GetRequestQuery, error) {
	id, err := kernel.UUIDFromString(requestID)
	if err != nil {
		return GetRequestQuery{}, err
	}
	return GetRequestQuery{actor: actor, requestID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

func (q GetRequestQuery) Actor() services.Actor {
	return q.actor
}

func (q GetRequestQuery) RequestID() kernel.UUID {
	return q.requestID
}
