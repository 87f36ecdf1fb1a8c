package memory

import (
	"context"
	"sync"
	"time"

	"transportconnect/internal/core/ports"
)

// Denylist is a process-local ports.TokenDenylist, used when no Redis is
// configured. Entries are dropped lazily once their token would have expired.
type Denylist struct {
	mu      sync.Mutex
	clock   ports.Clock
	entries map[string]time.Time
}

func NewDenylist(clock ports.Clock) *Denylist {
	return &Denylist{clock: clock, entries: make(map[string]time.Time)}
}

func (d *Denylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	for id, exp := range d.entries {
		if !now.Before(exp) {
			delete(d.entries, id)
		}
	}
	if now.Before(until) {
		d.entries[tokenID] = until
	}
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	until, ok := d.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !d.clock.Now().Before(until) {
		delete(d.entries, tokenID)
		return false, nil
	}
	return true, nil
}
