package queries

import (
	"errors"
	"strings"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/errs"
	"transportconnect/internal/pkg/guard"
)

var ErrListIdentitiesQueryIsNotConstructed = errors.New(
	"ListIdentitiesQuery must be created via NewListIdentitiesQuery constructor",
)

// ListIdentitiesQuery lists accounts for admins, newest first, optionally
// narrowed by role and by active flag.
//
// Example:
//
//	query, err := NewListIdentitiesQuery(admin, "driver", "inactive")
//	if err != nil {
//	    return err
//	}
//	suspendedDrivers, err := handler.Handle(ctx, query)
type ListIdentitiesQuery struct {
	actor  services.Actor
	role   identity.Role
	active *bool

	guard guard.ConstructorGuard
}

// NewListIdentitiesQuery accepts an empty role for all roles and a status of
// "", "active" or "inactive".
func NewListIdentitiesQuery(actor services.Actor, role, status string) (ListIdentitiesQuery, error) {
	q := ListIdentitiesQuery{actor: actor, guard: guard.NewConstructorGuard()}

	var roleErr, statusErr error
	if role = strings.TrimSpace(role); role != "" {
		q.role, roleErr = identity.ParseRole(strings.ToLower(role))
	}

	switch strings.ToLower(strings.TrimSpace(status)) {
	case "":
	case "active":
		active := true
		q.active = &active
	case "inactive":
		active := false
		q.active = &active
	default:
		statusErr = errs.NewValueIsInvalidErrorWithCause("status", errors.New("must be active or inactive"))
	}

	if err := errors.Join(roleErr, statusErr); err != nil {
		return ListIdentitiesQuery{}, err
	}
	return q, nil
}

func (q ListIdentitiesQuery) Validate() error {
	return q.guard.Validate(ErrListIdentitiesQueryIsNotConstructed)
}

func (q ListIdentitiesQuery) Actor() services.Actor {
	return q.actor
}

// Role is empty when every role is listed.
func (q ListIdentitiesQuery) Role() identity.Role {
	return q.role
}

// Active is nil when both active and inactive accounts are listed.
func (q ListIdentitiesQuery) Active() *bool {
	return q.active
}
