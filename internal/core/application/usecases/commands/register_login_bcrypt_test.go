package commands_test

import (
	"testing"

	"transportconnect/internal/adapters/contracttest"
	"transportconnect/internal/adapters/out/bcrypthasher"
	"transportconnect/internal/adapters/out/jwttoken"
	"transportconnect/internal/adapters/out/memory"
	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterThenLogin_WithBcrypt(t *testing.T) {
	setup := func(t *testing.T) (commands.RegisterCommandHandler, commands.LoginCommandHandler) {
		t.Helper()
		clock := &manualClock{now: contracttest.FixedNow}
		tokens, err := jwttoken.New(jwttoken.Config{Secret: testSecret}, clock)
		require.NoError(t, err)
		hasher, err := bcrypthasher.NewWithCost(bcrypt.MinCost)
		require.NoError(t, err)

		factories := commands.NewFactories(memory.NewStore())
		return commands.NewRegisterCommandHandler(factories.Identity(), hasher, tokens, clock),
			commands.NewLoginCommandHandler(factories.Identity(), hasher, tokens)
	}

	signUp := func(t *testing.T, register commands.RegisterCommandHandler, email, password string) commands.AuthResult {
		t.Helper()
		cmd, err := commands.NewRegisterCommand("Test", "User", email, password, "sender", "+48 600 100 200")
		require.NoError(t, err)
		result, err := register.Handle(t.Context(), cmd)
		require.NoError(t, err)
		return result
	}

	logIn := func(t *testing.T, login commands.LoginCommandHandler, email, password string) (commands.AuthResult, error) {
		t.Helper()
		cmd, err := commands.NewLoginCommand(email, password)
		require.NoError(t, err)
		return login.Handle(t.Context(), cmd)
	}

	t.Run("should log in with the password used at registration", func(t *testing.T) {
		register, login := setup(t)
		registered := signUp(t, register, "anna@example.com", "secret-pass")

		result, err := logIn(t, login, "anna@example.com", "secret-pass")

		require.NoError(t, err)
		assert.Equal(t, registered.Identity.ID, result.Identity.ID)
	})

	t.Run("should treat a digest-shaped password as plaintext", func(t *testing.T) {
		register, login := setup(t)
		digestShaped, err := bcrypt.GenerateFromPassword([]byte("other"), bcrypt.MinCost)
		require.NoError(t, err)
		signUp(t, register, "anna@example.com", string(digestShaped))

		_, err = logIn(t, login, "anna@example.com", string(digestShaped))
		require.NoError(t, err)

		_, err = logIn(t, login, "anna@example.com", "other")
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("should reject a wrong password and an unknown email alike", func(t *testing.T) {
		register, login := setup(t)
		signUp(t, register, "anna@example.com", "secret-pass")

		_, wrongPassword := logIn(t, login, "anna@example.com", "secret-pasS")
		_, unknownEmail := logIn(t, login, "nobody@example.com", "secret-pass")

		require.ErrorIs(t, wrongPassword, errs.ErrInvalidCredentials)
		require.ErrorIs(t, unknownEmail, errs.ErrInvalidCredentials)
	})
}
