package jwttoken_test

import (
	"strings"
	"testing"
	"time"

	"transportconnect/internal/adapters/out/jwttoken"
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func newService(t *testing.T, clock *manualClock) *jwttoken.Service {
	t.Helper()
	s, err := jwttoken.New(jwttoken.Config{Secret: secret}, clock)
	require.NoError(t, err)
	return s
}

func TestService_IssueAndParse(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newService(t, clock)
	subject := kernel.NewUUID()

	t.Run("should round trip subject, role and id", func(t *testing.T) {
		token, err := s.Issue(subject, identity.RoleDriver)
		require.NoError(t, err)

		claims, err := s.Parse(token.Value)

		require.NoError(t, err)
		assert.Equal(t, subject, claims.Subject)
		assert.Equal(t, identity.RoleDriver, claims.Role)
		assert.Equal(t, token.ID, claims.ID)
		assert.Equal(t, clock.now.Add(jwttoken.DefaultTTL), token.ExpiresAt)
		assert.Equal(t, token.ExpiresAt, claims.ExpiresAt)
	})

	t.Run("should reject expired tokens", func(t *testing.T) {
		c := &manualClock{now: clock.now}
		svc := newService(t, c)
		token, err := svc.Issue(subject, identity.RoleSender)
		require.NoError(t, err)

		c.now = c.now.Add(jwttoken.DefaultTTL + time.Second)
		_, err = svc.Parse(token.Value)

		require.ErrorIs(t, err, errs.ErrInvalidToken)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("should reject tampered tokens", func(t *testing.T) {
		token, err := s.Issue(subject, identity.RoleSender)
		require.NoError(t, err)
		parts := strings.Split(token.Value, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))

		_, err = s.Parse(strings.Join(parts, "."))

		require.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("should reject tokens signed with another secret", func(t *testing.T) {
		other, err := jwttoken.New(jwttoken.Config{Secret: strings.Repeat("z", 32)}, clock)
		require.NoError(t, err)
		token, err := other.Issue(subject, identity.RoleSender)
		require.NoError(t, err)

		_, err = s.Parse(token.Value)

		require.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("should reject the none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   subject.String(),
			Issuer:    jwttoken.DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.Parse(raw)

		require.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("should reject malformed and empty input", func(t *testing.T) {
		for _, raw := range []string{"", "garbage", "a.b.c"} {
			_, err := s.Parse(raw)
			require.ErrorIs(t, err, errs.ErrInvalidToken, raw)
			assert.Equal(t, errs.KindInvalidToken, errs.KindOf(err))
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("should refuse short secrets", func(t *testing.T) {
		_, err := jwttoken.New(jwttoken.Config{Secret: "short"}, &manualClock{})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
