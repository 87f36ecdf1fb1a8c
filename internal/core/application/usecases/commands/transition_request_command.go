package commands

import (
	"errors"
	"strings"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/guard"
)

var ErrTransitionRequestCommandIsNotConstructed = errors.New(
	"TransitionRequestCommand must be created via NewTransitionRequestCommand constructor",
)

// TransitionRequestCommand asks the lifecycle engine to move a request.
//
// Example:
//
//	cmd, err := NewTransitionRequestCommand(actor, requestID, "accepted")
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type TransitionRequestCommand struct {
	actor     services.Actor
	requestID kernel.UUID
	target    request.Status

	guard guard.ConstructorGuard
}

func NewTransitionRequestCommand(actor services.Actor, requestID, target string) (TransitionRequestCommand, error) {
	id, idErr := kernel.UUIDFromString(requestID)
	status, statusErr := request.ParseStatus(strings.TrimSpace(target))
	if err := errors.Join(idErr, statusErr); err != nil {
		return TransitionRequestCommand{}, err
	}
	return TransitionRequestCommand{
		actor:     actor,
		requestID: id,
		target:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionRequestCommand) Validate() error {
	return c.guard.Validate(ErrTransitionRequestCommandIsNotConstructed)
}

func (c TransitionRequestCommand) Actor() services.Actor {
	return c.actor
}

func (c TransitionRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c TransitionRequestCommand) Target() request.Status {
	return c.target
}
