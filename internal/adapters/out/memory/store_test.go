package memory_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"transportconnect/internal/adapters/contracttest"
	"transportconnect/internal/adapters/out/memory"
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestStore_Contracts(t *testing.T) {
	contracttest.RunAll(t, func(*testing.T) ports.UnitOfWorkFactory {
		return memory.NewStore()
	})
}

func TestStore_ConcurrentTransitions(t *testing.T) {
	t.Run("should let exactly one of several racing transitions win", func(t *testing.T) {
		store := memory.NewStore()
		o := contracttest.NewOffer(t, kernel.NewUUID())
		r := contracttest.NewRequest(t, o, kernel.NewUUID())
		require.NoError(t, store.Create().RequestRepository().Add(t.Context(), r))

		targets := []request.Status{request.StatusAccepted, request.StatusRejected}
		var wins, conflicts, noops atomic.Int32
		g, ctx := errgroup.WithContext(t.Context())
		for i := range 16 {
			target := targets[i%len(targets)]
			g.Go(func() error {
				uow := store.Create()
				if err := uow.Begin(ctx); err != nil {
					return err
				}
				current, err := uow.RequestRepository().Get(ctx, r.ID())
				if err != nil {
					return err
				}
				expected := current.Status()
				_, changed, err := current.Transition(r.DriverID(), target, time.Now())
				if err != nil || !changed {
					_ = uow.Rollback(ctx)
					switch {
					case err == nil:
						noops.Add(1)
					case errors.Is(err, errs.ErrInvalidTransition):
						conflicts.Add(1)
					default:
						return err
					}
					return nil
				}
				if err = uow.RequestRepository().Update(ctx, current, expected); err != nil {
					return err
				}
				err = uow.Commit(ctx)
				switch {
				case err == nil:
					wins.Add(1)
				case errors.Is(err, errs.ErrInvalidTransition):
					conflicts.Add(1)
				default:
					return err
				}
				return nil
			})
		}

		require.NoError(t, g.Wait())
		assert.Equal(t, int32(1), wins.Load())
		assert.Equal(t, int32(15), conflicts.Load()+noops.Load())

		got, err := store.Create().RequestRepository().Get(t.Context(), r.ID())
		require.NoError(t, err)
		assert.Contains(t, targets, got.Status())
	})

	t.Run("should keep concurrent counter increments", func(t *testing.T) {
		store := memory.NewStore()
		driver := contracttest.NewIdentity(t, "busy@example.com", identity.RoleDriver)
		require.NoError(t, store.Create().IdentityRepository().Add(t.Context(), driver))

		var g errgroup.Group
		for range 50 {
			g.Go(func() error {
				uow := store.Create()
				if err := uow.Begin(t.Context()); err != nil {
					return err
				}
				if err := uow.IdentityRepository().IncrementCompletedTransports(t.Context(), driver.ID()); err != nil {
					return err
				}
				return uow.Commit(t.Context())
			})
		}

		require.NoError(t, g.Wait())
		got, err := store.Create().IdentityRepository().Get(t.Context(), driver.ID())
		require.NoError(t, err)
		assert.Equal(t, 50, got.CompletedTransports())
	})
}

func TestStore_CommitIsAtomic(t *testing.T) {
	t.Run("should apply nothing when one buffered write fails", func(t *testing.T) {
		store := memory.NewStore()
		existing := contracttest.NewIdentity(t, "taken@example.com", identity.RoleSender)
		require.NoError(t, store.Create().IdentityRepository().Add(t.Context(), existing))

		uow := store.Create()
		require.NoError(t, uow.Begin(t.Context()))
		o := contracttest.NewOffer(t, kernel.NewUUID())
		require.NoError(t, uow.OfferRepository().Add(t.Context(), o))
		require.NoError(t, uow.IdentityRepository().IncrementCompletedTransports(t.Context(), kernel.NewUUID()))

		err := uow.Commit(t.Context())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		_, err = store.Create().OfferRepository().Get(t.Context(), o.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should detect duplicate emails registered by two open transactions", func(t *testing.T) {
		store := memory.NewStore()
		first, second := store.Create(), store.Create()
		require.NoError(t, first.Begin(t.Context()))
		require.NoError(t, second.Begin(t.Context()))

		require.NoError(t, first.IdentityRepository().Add(t.Context(), contracttest.NewIdentity(t, "race@example.com", identity.RoleDriver)))
		require.NoError(t, second.IdentityRepository().Add(t.Context(), contracttest.NewIdentity(t, "race@example.com", identity.RoleSender)))

		require.NoError(t, first.Commit(t.Context()))
		require.ErrorIs(t, second.Commit(t.Context()), errs.ErrDuplicateIdentity)
	})
}
