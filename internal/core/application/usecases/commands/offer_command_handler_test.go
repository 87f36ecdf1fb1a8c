package commands_test

import (
	"testing"

	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOfferCommandHandler_Handle(t *testing.T) {
	t.Run("should publish an active offer owned by the driver", func(t *testing.T) {
		env := newTestEnv(t)
		driver := env.registerAs("driver@example.com", identity.RoleDriver)

		created := env.publishOffer(driver)
		assert.True(t, created.IsOwnedBy(driver.ID))
		assert.Equal(t, offer.StatusActive, created.Status())

		stored, err := env.store.Create().OfferRepository().Get(t.Context(), created.ID())
		require.NoError(t, err)
		assert.Equal(t, created.ID(), stored.ID())
	})

	t.Run("should forbid senders from publishing offers", func(t *testing.T) {
		env := newTestEnv(t)
		sender := env.registerAs("sender@example.com", identity.RoleSender)
		cmd, err := commands.NewCreateOfferCommand(sender, offer.Route{}, offer.Capacity{})
		require.NoError(t, err)

		_, err = env.createOffer.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should validate route and capacity", func(t *testing.T) {
		env := newTestEnv(t)
		driver := env.registerAs("driver@example.com", identity.RoleDriver)
		cmd, err := commands.NewCreateOfferCommand(driver, offer.Route{From: "Warsaw"}, offer.Capacity{MaxWeightKg: decimal.Zero})
		require.NoError(t, err)

		_, err = env.createOffer.Handle(t.Context(), cmd)
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should require an authenticated actor", func(t *testing.T) {
		_, err := commands.NewCreateOfferCommand(services.Actor{Role: identity.RoleDriver}, offer.Route{}, offer.Capacity{})
		require.Error(t, err)
	})
}

func TestDeleteOfferCommandHandler_Handle(t *testing.T) {
	t.Run("should let an admin remove an offer and keep its requests", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.registerAdmin()
		d := env.newDeal()

		cmd, err := commands.NewDeleteOfferCommand(admin, d.offer.ID().String())
		require.NoError(t, err)
		require.NoError(t, env.deleteOffer.Handle(t.Context(), cmd))

		_, err = env.store.Create().OfferRepository().Get(t.Context(), d.offer.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, request.StatusPending, env.storedRequest(d.request.ID()).Status())
	})

	t.Run("should forbid the owning driver", func(t *testing.T) {
		env := newTestEnv(t)
		d := env.newDeal()

		cmd, err := commands.NewDeleteOfferCommand(d.driver, d.offer.ID().String())
		require.NoError(t, err)
		require.ErrorIs(t, env.deleteOffer.Handle(t.Context(), cmd), errs.ErrForbidden)
	})

	t.Run("should report a missing offer", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.registerAdmin()

		cmd, err := commands.NewDeleteOfferCommand(admin, kernel.NewUUID().String())
		require.NoError(t, err)
		require.ErrorIs(t, env.deleteOffer.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
	})
}

func TestCreateRequestCommandHandler_Handle(t *testing.T) {
	t.Run("should create a pending request bound to the offer driver", func(t *testing.T) {
		env := newTestEnv(t)
		d := env.newDeal()

		assert.Equal(t, request.StatusPending, d.request.Status())
		assert.Equal(t, d.driver.ID, d.request.DriverID())
		assert.Equal(t, d.sender.ID, d.request.SenderID())
		assert.Equal(t, d.offer.ID(), d.request.OfferID())
		assert.False(t, d.request.IsRatable())
	})

	t.Run("should forbid drivers from requesting transport", func(t *testing.T) {
		env := newTestEnv(t)
		driver := env.registerAs("driver@example.com", identity.RoleDriver)
		other := env.registerAs("other@example.com", identity.RoleDriver)
		o := env.publishOffer(driver)

		cmd, err := commands.NewCreateRequestCommand(other, o.ID().String(), testDetails())
		require.NoError(t, err)
		_, err = env.createRequest.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should report a missing offer", func(t *testing.T) {
		env := newTestEnv(t)
		sender := env.registerAs("sender@example.com", identity.RoleSender)

		cmd, err := commands.NewCreateRequestCommand(sender, kernel.NewUUID().String(), testDetails())
		require.NoError(t, err)
		_, err = env.createRequest.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should validate cargo", func(t *testing.T) {
		env := newTestEnv(t)
		driver := env.registerAs("driver@example.com", identity.RoleDriver)
		sender := env.registerAs("sender@example.com", identity.RoleSender)
		o := env.publishOffer(driver)

		details := testDetails()
		details.Cargo.WeightKg = decimal.Zero
		cmd, err := commands.NewCreateRequestCommand(sender, o.ID().String(), details)
		require.NoError(t, err)
		_, err = env.createRequest.Handle(t.Context(), cmd)
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("should reject a malformed offer id", func(t *testing.T) {
		_, err := commands.NewCreateRequestCommand(services.Actor{}, "42", testDetails())
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}
