// Package commands contains the operations that change state: registration,
// login and logout, offers, transport requests and their lifecycle, admin
// actions on identities, and the outbox relay.
//
// Every command is built by its constructor, which validates input, and run
// by a handler that owns one unit of work.
package commands

import (
	"context"

	"transportconnect/internal/core/ports"
)

// Each handler asks for the narrowest unit of work it needs.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	IdentityRepoFactory interface {
		IdentityRepository() ports.IdentityRepository
	}

	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// IdentityUoW serves registration, login and admin identity changes.
	IdentityUoW interface {
		TxManager
		IdentityRepoFactory
	}

	IdentityUoWFactory interface {
		Create() IdentityUoW
	}

	// OfferUoW serves offer publication and removal.
	OfferUoW interface {
		TxManager
		OfferRepoFactory
	}

	OfferUoWFactory interface {
		Create() OfferUoW
	}

	// RequestUoW serves request creation, which reads the offer.
	RequestUoW interface {
		TxManager
		OfferRepoFactory
		RequestRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// OutboxUoW serves the relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW spans every repository. The lifecycle engine needs it to update the
	// request, the driver's counter and the outbox atomically.
	UoW interface {
		TxManager
		IdentityRepoFactory
		OfferRepoFactory
		RequestRepoFactory
		OutboxRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Factories adapts a ports.UnitOfWorkFactory to every handler factory above.
type Factories struct {
	uow ports.UnitOfWorkFactory
}

func NewFactories(uow ports.UnitOfWorkFactory) Factories {
	return Factories{uow: uow}
}

func (f Factories) Identity() IdentityUoWFactory {
	return identityUoWFactoryFunc(func() IdentityUoW { return f.uow.Create() })
}

func (f Factories) Offer() OfferUoWFactory {
	return offerUoWFactoryFunc(func() OfferUoW { return f.uow.Create() })
}

func (f Factories) Request() RequestUoWFactory {
	return requestUoWFactoryFunc(func() RequestUoW { return f.uow.Create() })
}

func (f Factories) Outbox() OutboxUoWFactory {
	return outboxUoWFactoryFunc(func() OutboxUoW { return f.uow.Create() })
}

func (f Factories) All() UoWFactory {
	return uowFactoryFunc(func() UoW { return f.uow.Create() })
}

type identityUoWFactoryFunc func() IdentityUoW

func (fn identityUoWFactoryFunc) Create() IdentityUoW {
	return fn()
}

type offerUoWFactoryFunc func() OfferUoW

func (fn offerUoWFactoryFunc) Create() OfferUoW {
	return fn()
}

type requestUoWFactoryFunc func() RequestUoW

func (fn requestUoWFactoryFunc) Create() RequestUoW {
	return fn()
}

type outboxUoWFactoryFunc func() OutboxUoW

func (fn outboxUoWFactoryFunc) Create() OutboxUoW {
	return fn()
}

type uowFactoryFunc func() UoW

func (fn uowFactoryFunc) Create() UoW {
	return fn()
}
