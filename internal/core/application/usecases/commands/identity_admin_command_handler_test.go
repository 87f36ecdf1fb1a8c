package commands_test

import (
	"testing"
	"time"

	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetIdentityActiveCommandHandler_Handle(t *testing.T) {
	t.Run("should suspend and reactivate an account", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.registerAdmin()
		driver := env.registerAs("driver@example.com", identity.RoleDriver)

		cmd, err := commands.NewSetIdentityActiveCommand(admin, driver.ID.String(), false)
		require.NoError(t, err)
		summary, err := env.setActive.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.False(t, summary.IsActive)
		assert.False(t, env.storedIdentity(driver.ID).IsActive())

		cmd, err = commands.NewSetIdentityActiveCommand(admin, driver.ID.String(), true)
		require.NoError(t, err)
		summary, err = env.setActive.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.True(t, summary.IsActive)
		assert.True(t, env.storedIdentity(driver.ID).IsActive())
	})

	t.Run("should not touch an identity already in the requested state", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.registerAdmin()
		sender := env.registerAs("sender@example.com", identity.RoleSender)
		before := env.storedIdentity(sender.ID).UpdatedAt()

		env.clock.Advance(time.Minute)
		cmd, err := commands.NewSetIdentityActiveCommand(admin, sender.ID.String(), true)
		require.NoError(t, err)
		_, err = env.setActive.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.True(t, before.Equal(env.storedIdentity(sender.ID).UpdatedAt()))
	})

	t.Run("should forbid non-admins", func(t *testing.T) {
		env := newTestEnv(t)
		driver := env.registerAs("driver@example.com", identity.RoleDriver)
		sender := env.registerAs("sender@example.com", identity.RoleSender)

		cmd, err := commands.NewSetIdentityActiveCommand(driver, sender.ID.String(), false)
		require.NoError(t, err)
		_, err = env.setActive.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should keep an admin from locking themselves out", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.registerAdmin()

		cmd, err := commands.NewSetIdentityActiveCommand(admin, admin.ID.String(), false)
		require.NoError(t, err)
		_, err = env.setActive.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, commands.ErrCannotDeactivateSelf)
		assert.True(t, env.storedIdentity(admin.ID).IsActive())
	})

	t.Run("should report a missing identity", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.registerAdmin()

		cmd, err := commands.NewSetIdentityActiveCommand(admin, kernel.NewUUID().String(), false)
		require.NoError(t, err)
		_, err = env.setActive.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestVerifyIdentityCommandHandler_Handle(t *testing.T) {
	t.Run("should verify once and treat repeats as no-ops", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.registerAdmin()
		driver := env.registerAs("driver@example.com", identity.RoleDriver)

		cmd, err := commands.NewVerifyIdentityCommand(admin, driver.ID.String())
		require.NoError(t, err)

		summary, err := env.verify.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.True(t, summary.IsVerified)
		verifiedAt := env.storedIdentity(driver.ID).UpdatedAt()

		env.clock.Advance(time.Minute)
		summary, err = env.verify.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.True(t, summary.IsVerified)
		assert.True(t, verifiedAt.Equal(env.storedIdentity(driver.ID).UpdatedAt()))
	})

	t.Run("should forbid non-admins", func(t *testing.T) {
		env := newTestEnv(t)
		driver := env.registerAs("driver@example.com", identity.RoleDriver)

		cmd, err := commands.NewVerifyIdentityCommand(driver, driver.ID.String())
		require.NoError(t, err)
		_, err = env.verify.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}
