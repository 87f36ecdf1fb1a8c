package request

import (
	"fmt"
	"strings"

	"transportconnect/internal/pkg/errs"
)

// Party is the side of a request an actor stands on.
type Party int

const (
	PartyNone Party = iota
	PartyOfferDriver
	PartyRequestingSender
)

func (p Party) String() string {
	switch p {
	case PartyOfferDriver:
		return "offer driver"
	case PartyRequestingSender:
		return "requesting sender"
	case PartyNone:
	}
	return "none"
}

type edge struct {
	From Status
	To   Status
	By   Party
}

// edges is the complete lifecycle. Anything not listed is rejected.
var edges = []edge{
	{From: StatusPending, To: StatusAccepted, By: PartyOfferDriver},
	{From: StatusPending, To: StatusRejected, By: PartyOfferDriver},
	{From: StatusPending, To: StatusCancelled, By: PartyRequestingSender},
	{From: StatusAccepted, To: StatusInTransit, By: PartyOfferDriver},
	{From: StatusAccepted, To: StatusCancelled, By: PartyRequestingSender},
	{From: StatusInTransit, To: StatusDelivered, By: PartyOfferDriver},
}

type edgeKey struct {
	From Status
	To   Status
}

var edgeIndex = func() map[edgeKey]Party {
	m := make(map[edgeKey]Party, len(edges))
	for _, e := range edges {
		m[edgeKey{e.From, e.To}] = e.By
	}
	return m
}()

// NextStatuses returns the statuses reachable from s in table order.
func NextStatuses(s Status) []Status {
	var next []Status
	for _, e := range edges {
		if e.From == s {
			next = append(next, e.To)
		}
	}
	return next
}

// InvalidTransitionError reports a (from, to) pair that is not a lifecycle edge.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

func (e *InvalidTransitionError) Error() string {
	allowed := "none (terminal state)"
	if len(e.Allowed) > 0 {
		names := make([]string, len(e.Allowed))
		for i, s := range e.Allowed {
			names[i] = string(s)
		}
		allowed = strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s: %s -> %s (allowed from %s: %s)", errs.ErrInvalidTransition, e.From, e.To, e.From, allowed)
}

func (e *InvalidTransitionError) Unwrap() error {
	return errs.ErrInvalidTransition
}

// CheckTransition validates that from -> to is an edge triggered by party.
// A missing edge is an InvalidTransitionError; a listed edge triggered by the
// wrong party is ErrForbidden.
func CheckTransition(from, to Status, by Party) error {
	owner, ok := edgeIndex[edgeKey{from, to}]
	if !ok {
		return &InvalidTransitionError{From: from, To: to, Allowed: NextStatuses(from)}
	}
	if owner != by {
		return fmt.Errorf("%w: %s -> %s may only be performed by the %s", errs.ErrForbidden, from, to, owner)
	}
	return nil
}
