package commands_test

import (
	"testing"

	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterCommand(t *testing.T) {
	t.Run("should accept a valid sender sign-up", func(t *testing.T) {
		cmd, err := commands.NewRegisterCommand(" Anna ", "Nowak", "Anna@Example.com", "secret-pass", "Sender", "+48 600 100 200")
		require.NoError(t, err)

		reg := cmd.Registration()
		assert.Equal(t, "Anna", reg.FirstName)
		assert.Equal(t, "anna@example.com", cmd.Email().String())
		assert.Equal(t, identity.RoleSender, cmd.Role())
		assert.False(t, cmd.Verified())
	})

	t.Run("should refuse public admin sign-up", func(t *testing.T) {
		_, err := commands.NewRegisterCommand("Anna", "Nowak", "anna@example.com", "secret-pass", "admin", "+48 600 100 200")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should report every missing field at once", func(t *testing.T) {
		_, err := commands.NewRegisterCommand("", "", "not-an-email", "123", "pilot", "")
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should create admins verified", func(t *testing.T) {
		cmd, err := commands.NewRegisterAdminCommand("Ada", "Admin", "admin@example.com", "secret-pass", "+48 600 000 000")
		require.NoError(t, err)
		assert.Equal(t, identity.RoleAdmin, cmd.Role())
		assert.True(t, cmd.Verified())
	})
}

func TestRegisterCommandHandler_Handle(t *testing.T) {
	t.Run("should store an unverified active identity and issue a token", func(t *testing.T) {
		env := newTestEnv(t)
		cmd, err := commands.NewRegisterCommand("Anna", "Nowak", "anna@example.com", "secret-pass", "driver", "+48 600 100 200")
		require.NoError(t, err)

		result, err := env.register.Handle(t.Context(), cmd)
		require.NoError(t, err)

		assert.Equal(t, identity.RoleDriver, result.Identity.Role)
		assert.False(t, result.Identity.IsVerified)
		assert.True(t, result.Identity.IsActive)
		assert.NotEmpty(t, result.Token.Value)

		claims, err := env.tokens.Parse(result.Token.Value)
		require.NoError(t, err)
		assert.Equal(t, result.Identity.ID, claims.Subject)

		stored := env.storedIdentity(result.Identity.ID)
		assert.NotEqual(t, "secret-pass", string(stored.Digest()))
	})

	t.Run("should reject an email registered in another case", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAs("anna@example.com", identity.RoleSender)

		cmd, err := commands.NewRegisterCommand("Anna", "Nowak", "ANNA@example.com", "other-pass", "driver", "+48 600 100 200")
		require.NoError(t, err)
		_, err = env.register.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrDuplicateIdentity)
		assert.Equal(t, errs.KindDuplicateIdentity, errs.KindOf(err))
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.register.Handle(t.Context(), commands.RegisterCommand{})
		require.ErrorIs(t, err, commands.ErrRegisterCommandIsNotConstructed)
	})
}
