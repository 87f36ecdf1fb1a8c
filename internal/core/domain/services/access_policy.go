package services

import (
	"fmt"
	"slices"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/pkg/errs"
)

type Action string

const (
	ActionCreateOffer       Action = "offer.create"
	ActionListOffers        Action = "offer.list"
	ActionDeleteOffer       Action = "offer.delete"
	ActionCreateRequest     Action = "request.create"
	ActionViewRequest       Action = "request.view"
	ActionTransitionRequest Action = "request.transition"
	ActionListIdentities    Action = "identity.list"
	ActionSetIdentityActive Action = "identity.set_active"
	ActionVerifyIdentity    Action = "identity.verify"
	ActionViewStatistics    Action = "statistics.view"
)

type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// Actor is an authenticated caller.
type Actor struct {
	ID   kernel.UUID
	Role identity.Role
}

// Resource describes what an action touches. Fields irrelevant to the action
// are left zero.
type Resource struct {
	RequestDriverID kernel.UUID
	RequestSenderID kernel.UUID
	TargetStatus    request.Status
}

// RequestResource describes r, optionally with the status an actor wants to move it to.
func RequestResource(r *request.TransportRequest, target request.Status) Resource {
	return Resource{
		RequestDriverID: r.DriverID(),
		RequestSenderID: r.SenderID(),
		TargetStatus:    target,
	}
}

var (
	adminActions = []Action{
		ActionListOffers,
		ActionDeleteOffer,
		ActionViewRequest,
		ActionListIdentities,
		ActionSetIdentityActive,
		ActionVerifyIdentity,
		ActionViewStatistics,
	}

	// The current status is included so a retried call reaches the engine as a no-op.
	driverTargets = []request.Status{
		request.StatusPending,
		request.StatusAccepted,
		request.StatusRejected,
		request.StatusInTransit,
		request.StatusDelivered,
	}
	senderTargets = []request.Status{
		request.StatusPending,
		request.StatusCancelled,
	}
)

// AccessPolicy is deterministic and side-effect free.
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

func (AccessPolicy) Authorize(actor Actor, action Action, res Resource) Decision {
	if actor.ID.IsZero() {
		return Deny
	}

	switch actor.Role {
	case identity.RoleAdmin:
		return Decision(slices.Contains(adminActions, action))

	case identity.RoleDriver:
		owns := res.RequestDriverID.IsEqual(actor.ID)
		switch action {
		case ActionCreateOffer:
			return Allow
		case ActionViewRequest:
			return Decision(owns)
		case ActionTransitionRequest:
			return Decision(owns && slices.Contains(driverTargets, res.TargetStatus))
		default:
			return Deny
		}

	case identity.RoleSender:
		owns := res.RequestSenderID.IsEqual(actor.ID)
		switch action {
		case ActionCreateRequest:
			return Allow
		case ActionViewRequest:
			return Decision(owns)
		case ActionTransitionRequest:
			return Decision(owns && slices.Contains(senderTargets, res.TargetStatus))
		default:
			return Deny
		}
	}

	return Deny
}

// Require turns a Deny into an error wrapping errs.ErrForbidden.
func (p AccessPolicy) Require(actor Actor, action Action, res Resource) error {
	if p.Authorize(actor, action, res) == Deny {
		return fmt.Errorf("%w: %s may not %s", errs.ErrForbidden, actor.Role, action)
	}
	return nil
}
