package contracttest

import (
	"testing"
	"time"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/outbox"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. Cleanup is registered on t by the factory.
type Factory func(t *testing.T) ports.UnitOfWorkFactory

// RunAll runs every contract against fresh stores from newStore.
func RunAll(t *testing.T, newStore Factory) {
	t.Run("identity repository", func(t *testing.T) { RunIdentityRepository(t, newStore) })
	t.Run("offer repository", func(t *testing.T) { RunOfferRepository(t, newStore) })
	t.Run("request repository", func(t *testing.T) { RunRequestRepository(t, newStore) })
	t.Run("outbox repository", func(t *testing.T) { RunOutboxRepository(t, newStore) })
	t.Run("unit of work", func(t *testing.T) { RunUnitOfWork(t, newStore) })
}

func RunIdentityRepository(t *testing.T, newStore Factory) {
	t.Run("should round trip an identity without losing fields", func(t *testing.T) {
		repo := newStore(t).Create().IdentityRepository()
		original := NewIdentity(t, "Anna.Nowak@Example.com", identity.RoleSender)

		require.NoError(t, repo.Add(t.Context(), original))

		got, err := repo.Get(t.Context(), original.ID())
		require.NoError(t, err)
		assert.Equal(t, original.ID(), got.ID())
		assert.Equal(t, "anna.nowak@example.com", got.Email().String())
		assert.Equal(t, original.Digest(), got.Digest())
		assert.Equal(t, identity.RoleSender, got.Role())
		assert.Equal(t, original.Phone(), got.Phone())
		assert.True(t, got.IsActive())
		assert.False(t, got.IsVerified())
		assert.Zero(t, got.CompletedTransports())
		assert.True(t, got.Rating().Average.IsZero())
		assert.True(t, original.CreatedAt().Equal(got.CreatedAt()))
	})

	t.Run("should find an identity by email case-insensitively", func(t *testing.T) {
		repo := newStore(t).Create().IdentityRepository()
		original := NewIdentity(t, "driver@example.com", identity.RoleDriver)
		require.NoError(t, repo.Add(t.Context(), original))

		email, err := kernel.NewEmail("  DRIVER@example.COM ")
		require.NoError(t, err)
		got, err := repo.FindByEmail(t.Context(), email)

		require.NoError(t, err)
		assert.Equal(t, original.ID(), got.ID())
	})

	t.Run("should reject a second identity with the same email", func(t *testing.T) {
		repo := newStore(t).Create().IdentityRepository()
		require.NoError(t, repo.Add(t.Context(), NewIdentity(t, "dup@example.com", identity.RoleDriver)))

		err := repo.Add(t.Context(), NewIdentity(t, "DUP@example.com", identity.RoleSender))

		require.ErrorIs(t, err, errs.ErrDuplicateIdentity)
	})

	t.Run("should return not found for unknown identities", func(t *testing.T) {
		repo := newStore(t).Create().IdentityRepository()

		_, err := repo.Get(t.Context(), kernel.NewUUID())
		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)

		email, _ := kernel.NewEmail("nobody@example.com")
		_, err = repo.FindByEmail(t.Context(), email)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		err = repo.IncrementCompletedTransports(t.Context(), kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should persist flag and digest changes on update", func(t *testing.T) {
		repo := newStore(t).Create().IdentityRepository()
		stored := NewIdentity(t, "flags@example.com", identity.RoleDriver)
		require.NoError(t, repo.Add(t.Context(), stored))

		later := FixedNow.Add(time.Hour)
		stored.SetActive(false, later)
		stored.Verify(later)
		_, err := stored.SetPassword(PlainHasher{}, "new-secret", later)
		require.NoError(t, err)
		require.NoError(t, repo.Update(t.Context(), stored))

		got, err := repo.Get(t.Context(), stored.ID())
		require.NoError(t, err)
		assert.False(t, got.IsActive())
		assert.True(t, got.IsVerified())
		assert.True(t, got.PasswordMatches(PlainHasher{}, "new-secret"))
		assert.True(t, later.Equal(got.UpdatedAt()))
	})

	t.Run("should increment the completed transports counter in place", func(t *testing.T) {
		repo := newStore(t).Create().IdentityRepository()
		driver := NewIdentity(t, "counter@example.com", identity.RoleDriver)
		require.NoError(t, repo.Add(t.Context(), driver))

		require.NoError(t, repo.IncrementCompletedTransports(t.Context(), driver.ID()))
		require.NoError(t, repo.IncrementCompletedTransports(t.Context(), driver.ID()))
		// a stale copy must not reset the counter
		require.NoError(t, repo.Update(t.Context(), driver))

		got, err := repo.Get(t.Context(), driver.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, got.CompletedTransports())
	})
}

func RunOfferRepository(t *testing.T, newStore Factory) {
	t.Run("should round trip an offer", func(t *testing.T) {
		uow := newStore(t).Create()
		driver := NewIdentity(t, "offer-driver@example.com", identity.RoleDriver)
		require.NoError(t, uow.IdentityRepository().Add(t.Context(), driver))
		original := NewOffer(t, driver.ID())

		require.NoError(t, uow.OfferRepository().Add(t.Context(), original))

		got, err := uow.OfferRepository().Get(t.Context(), original.ID())
		require.NoError(t, err)
		assert.Equal(t, driver.ID(), got.DriverID())
		assert.Equal(t, "Warsaw", got.Route().From)
		assert.Equal(t, "Berlin", got.Route().To)
		assert.True(t, original.Route().DepartureAt.Equal(got.Route().DepartureAt))
		assert.True(t, original.Capacity().MaxWeightKg.Equal(got.Capacity().MaxWeightKg))
		assert.True(t, original.Capacity().PricePerKg.Equal(got.Capacity().PricePerKg))
		assert.Equal(t, []string{"pallets", "furniture"}, got.Capacity().CargoTypes)
		assert.True(t, got.AcceptsRequests())
	})

	t.Run("should delete an offer once", func(t *testing.T) {
		repo := newStore(t).Create().OfferRepository()
		o := NewOffer(t, kernel.NewUUID())
		require.NoError(t, repo.Add(t.Context(), o))

		require.NoError(t, repo.Delete(t.Context(), o.ID()))

		_, err := repo.Get(t.Context(), o.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.ErrorIs(t, repo.Delete(t.Context(), o.ID()), errs.ErrObjectNotFound)
	})
}

func RunRequestRepository(t *testing.T, newStore Factory) {
	setup := func(t *testing.T) (ports.UnitOfWorkFactory, *request.TransportRequest) {
		store := newStore(t)
		uow := store.Create()
		o := NewOffer(t, kernel.NewUUID())
		require.NoError(t, uow.OfferRepository().Add(t.Context(), o))
		r := NewRequest(t, o, kernel.NewUUID())
		require.NoError(t, uow.RequestRepository().Add(t.Context(), r))
		return store, r
	}

	t.Run("should round trip a request", func(t *testing.T) {
		store, original := setup(t)

		got, err := store.Create().RequestRepository().Get(t.Context(), original.ID())

		require.NoError(t, err)
		assert.Equal(t, original.OfferID(), got.OfferID())
		assert.Equal(t, original.SenderID(), got.SenderID())
		assert.Equal(t, original.DriverID(), got.DriverID())
		assert.Equal(t, request.StatusPending, got.Status())
		assert.False(t, got.IsRatable())
		assert.Equal(t, "furniture", got.Details().Cargo.Type)
		assert.True(t, original.Details().Cargo.WeightKg.Equal(got.Details().Cargo.WeightKg))
		assert.True(t, original.Details().Cargo.Dimensions.Width.Equal(got.Details().Cargo.Dimensions.Width))
		assert.Equal(t, "Oak wardrobe", got.Details().Cargo.Description)
		assert.Equal(t, original.Details().PickupLocation, got.Details().PickupLocation)
		assert.Equal(t, original.Details().DeliveryLocation, got.Details().DeliveryLocation)
		assert.True(t, original.Details().EstimatedPrice.Equal(got.Details().EstimatedPrice))
		assert.Equal(t, "Fragile", got.Details().Notes)
	})

	t.Run("should update when the stored status matches", func(t *testing.T) {
		store, r := setup(t)
		repo := store.Create().RequestRepository()
		later := FixedNow.Add(time.Hour)
		_, _, err := r.Transition(r.DriverID(), request.StatusAccepted, later)
		require.NoError(t, err)

		require.NoError(t, repo.Update(t.Context(), r, request.StatusPending))

		got, err := repo.Get(t.Context(), r.ID())
		require.NoError(t, err)
		assert.Equal(t, request.StatusAccepted, got.Status())
		assert.True(t, later.Equal(got.UpdatedAt()))
	})

	t.Run("should refuse an update when the stored status moved on", func(t *testing.T) {
		store, r := setup(t)
		repo := store.Create().RequestRepository()
		accepted, err := repo.Get(t.Context(), r.ID())
		require.NoError(t, err)
		_, _, err = accepted.Transition(r.DriverID(), request.StatusAccepted, FixedNow)
		require.NoError(t, err)
		require.NoError(t, repo.Update(t.Context(), accepted, request.StatusPending))

		_, _, err = r.Transition(r.DriverID(), request.StatusRejected, FixedNow)
		require.NoError(t, err)
		err = repo.Update(t.Context(), r, request.StatusPending)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		got, err := repo.Get(t.Context(), r.ID())
		require.NoError(t, err)
		assert.Equal(t, request.StatusAccepted, got.Status())
	})

	t.Run("should return not found for unknown requests", func(t *testing.T) {
		store, _ := setup(t)

		_, err := store.Create().RequestRepository().Get(t.Context(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func RunOutboxRepository(t *testing.T, newStore Factory) {
	t.Run("should list pending messages oldest first up to the limit", func(t *testing.T) {
		repo := newStore(t).Create().OutboxRepository()
		var ids []kernel.UUID
		for i := range 3 {
			m, err := outbox.NewMessage("test.event", kernel.NewUUID(), map[string]int{"n": i}, FixedNow.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
			require.NoError(t, repo.Add(t.Context(), m))
			ids = append(ids, m.ID())
		}

		pending, err := repo.ListPending(t.Context(), 2)

		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, ids[0], pending[0].ID())
		assert.Equal(t, ids[1], pending[1].ID())
		assert.JSONEq(t, `{"n":0}`, string(pending[0].Payload()))
	})

	t.Run("should drop published messages from the pending list", func(t *testing.T) {
		repo := newStore(t).Create().OutboxRepository()
		m, err := outbox.NewMessage("test.event", kernel.NewUUID(), struct{}{}, FixedNow)
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), m))

		m.MarkPublished(FixedNow.Add(time.Second))
		require.NoError(t, repo.Update(t.Context(), m))

		pending, err := repo.ListPending(t.Context(), 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("should keep failed attempts pending with the last error", func(t *testing.T) {
		repo := newStore(t).Create().OutboxRepository()
		m, err := outbox.NewMessage("test.event", kernel.NewUUID(), struct{}{}, FixedNow)
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), m))

		m.MarkFailed(assert.AnError)
		require.NoError(t, repo.Update(t.Context(), m))

		pending, err := repo.ListPending(t.Context(), 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, 1, pending[0].Attempts())
		assert.Equal(t, assert.AnError.Error(), pending[0].LastError())
	})
}

func RunUnitOfWork(t *testing.T, newStore Factory) {
	t.Run("should make writes visible only after commit", func(t *testing.T) {
		store := newStore(t)
		uow := store.Create()
		require.NoError(t, uow.Begin(t.Context()))
		o := NewOffer(t, kernel.NewUUID())
		require.NoError(t, uow.OfferRepository().Add(t.Context(), o))

		_, err := store.Create().OfferRepository().Get(t.Context(), o.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		require.NoError(t, uow.Commit(t.Context()))
		_, err = store.Create().OfferRepository().Get(t.Context(), o.ID())
		require.NoError(t, err)
	})

	t.Run("should discard writes on rollback", func(t *testing.T) {
		store := newStore(t)
		uow := store.Create()
		require.NoError(t, uow.Begin(t.Context()))
		driver := NewIdentity(t, "rollback@example.com", identity.RoleDriver)
		require.NoError(t, uow.IdentityRepository().Add(t.Context(), driver))

		require.NoError(t, uow.Rollback(t.Context()))

		_, err := store.Create().IdentityRepository().Get(t.Context(), driver.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail commit and rollback without a transaction", func(t *testing.T) {
		uow := newStore(t).Create()

		require.Error(t, uow.Commit(t.Context()))
		require.Error(t, uow.Rollback(t.Context()))
	})
}
