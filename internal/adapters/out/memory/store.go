// Package memory implements the persistence ports in process memory.
//
// A Store holds committed state. Repositories obtained from a UnitOfWork
// outside Begin/Commit write through immediately; inside a transaction writes
// are buffered and applied at Commit as one atomic step under the store lock.
// Commit re-checks every constraint the SQL store enforces: unique email and
// the request status compare-and-swap. Reads always see committed state.
package memory

import (
	"errors"
	"sync"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/model/outbox"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/ports"
)

var ErrNoTransaction = errors.New("memory: no active transaction")

type state struct {
	identities map[kernel.UUID]identity.RestoreParams
	emails     map[string]kernel.UUID
	offers     map[kernel.UUID]offer.RestoreParams
	requests   map[kernel.UUID]request.RestoreParams
	messages   map[kernel.UUID]outbox.RestoreParams
	// insertion order of messages
	messageLog []kernel.UUID
}

func newState() *state {
	return &state{
		identities: make(map[kernel.UUID]identity.RestoreParams),
		emails:     make(map[string]kernel.UUID),
		offers:     make(map[kernel.UUID]offer.RestoreParams),
		requests:   make(map[kernel.UUID]request.RestoreParams),
		messages:   make(map[kernel.UUID]outbox.RestoreParams),
	}
}

// clone copies the maps. Stored records are values whose slices are never
// mutated in place, so a shallow copy is enough.
func (s *state) clone() *state {
	next := &state{
		identities: make(map[kernel.UUID]identity.RestoreParams, len(s.identities)),
		emails:     make(map[string]kernel.UUID, len(s.emails)),
		offers:     make(map[kernel.UUID]offer.RestoreParams, len(s.offers)),
		requests:   make(map[kernel.UUID]request.RestoreParams, len(s.requests)),
		messages:   make(map[kernel.UUID]outbox.RestoreParams, len(s.messages)),
		messageLog: append([]kernel.UUID(nil), s.messageLog...),
	}
	for k, v := range s.identities {
		next.identities[k] = v
	}
	for k, v := range s.emails {
		next.emails[k] = v
	}
	for k, v := range s.offers {
		next.offers[k] = v
	}
	for k, v := range s.requests {
		next.requests[k] = v
	}
	for k, v := range s.messages {
		next.messages[k] = v
	}
	return next
}

type op func(*state) error

// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

// Create implements ports.UnitOfWorkFactory.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) apply(ops []op) error {
	if len(ops) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	for _, o := range ops {
		if err := o(next); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}

func (s *Store) read(fn func(*state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}
