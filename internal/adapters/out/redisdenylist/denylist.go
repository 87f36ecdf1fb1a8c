// Package redisdenylist stores revoked token IDs in Redis with a TTL equal to
// the remaining token lifetime, so entries disappear once the token would
// have expired anyway.
package redisdenylist

import (
	"context"
	"fmt"
	"time"

	"transportconnect/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "transportconnect:revoked-token:"

type Denylist struct {
	client redis.UniversalClient
	clock  ports.Clock
}

func New(client redis.UniversalClient, clock ports.Clock) *Denylist {
	return &Denylist{client: client, clock: clock}
}

func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis: revoke token: %w", err)
	}
	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis: check token: %w", err)
	}
	return n > 0, nil
}
