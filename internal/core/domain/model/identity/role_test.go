package identity_test

import (
	"testing"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("should accept known roles in any case", func(t *testing.T) {
		for in, want := range map[string]identity.Role{
			"driver":  identity.RoleDriver,
			"SENDER":  identity.RoleSender,
			" admin ": identity.RoleAdmin,
		} {
			got, err := identity.ParseRole(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should reject empty and unknown roles", func(t *testing.T) {
		_, err := identity.ParseRole("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = identity.ParseRole("dispatcher")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRole_SelfRegistrable(t *testing.T) {
	assert.True(t, identity.RoleDriver.SelfRegistrable())
	assert.True(t, identity.RoleSender.SelfRegistrable())
	assert.False(t, identity.RoleAdmin.SelfRegistrable())
}
