package queries_test

import (
	"testing"
	"time"

	"transportconnect/internal/adapters/contracttest"
	"transportconnect/internal/adapters/out/jwttoken"
	"transportconnect/internal/adapters/out/memory"
	"transportconnect/internal/core/application/usecases/queries"
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

type authFixture struct {
	store    *memory.Store
	clock    *manualClock
	tokens   *jwttoken.Service
	denylist *memory.Denylist
	handler  queries.AuthenticateQueryHandler
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	clock := &manualClock{now: contracttest.FixedNow}
	tokens, err := jwttoken.New(jwttoken.Config{Secret: "0123456789abcdef0123456789abcdef", TTL: time.Hour}, clock)
	require.NoError(t, err)
	store := memory.NewStore()
	denylist := memory.NewDenylist(clock)
	return authFixture{
		store:    store,
		clock:    clock,
		tokens:   tokens,
		denylist: denylist,
		handler:  queries.NewAuthenticateQueryHandler(tokens, denylist, store),
	}
}

func (f authFixture) addIdentity(t *testing.T, email string, role identity.Role) *identity.Identity {
	t.Helper()
	i := contracttest.NewIdentity(t, email, role)
	require.NoError(t, f.store.Create().IdentityRepository().Add(t.Context(), i))
	return i
}

func (f authFixture) authenticate(t *testing.T, raw string) (queries.AuthenticateQueryResponse, error) {
	t.Helper()
	query, err := queries.NewAuthenticateQuery(raw)
	require.NoError(t, err)
	return f.handler.Handle(t.Context(), query)
}

func TestAuthenticateQueryHandler_Handle(t *testing.T) {
	t.Run("should resolve a valid token to its identity", func(t *testing.T) {
		f := newAuthFixture(t)
		i := f.addIdentity(t, "driver@example.com", identity.RoleDriver)
		token, err := f.tokens.Issue(i.ID(), i.Role())
		require.NoError(t, err)

		auth, err := f.authenticate(t, token.Value)
		require.NoError(t, err)
		assert.Equal(t, services.Actor{ID: i.ID(), Role: identity.RoleDriver}, auth.Actor)
		assert.Equal(t, "driver@example.com", auth.Identity.Email)
		assert.Equal(t, token.ID, auth.Claims.ID)
	})

	t.Run("should reject a malformed token", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.authenticate(t, "not.a.token")
		require.ErrorIs(t, err, errs.ErrInvalidToken)
		assert.Equal(t, errs.KindInvalidToken, errs.KindOf(err))
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		f := newAuthFixture(t)
		i := f.addIdentity(t, "driver@example.com", identity.RoleDriver)
		token, err := f.tokens.Issue(i.ID(), i.Role())
		require.NoError(t, err)

		f.clock.now = f.clock.now.Add(2 * time.Hour)
		_, err = f.authenticate(t, token.Value)
		require.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("should reject a revoked token", func(t *testing.T) {
		f := newAuthFixture(t)
		i := f.addIdentity(t, "driver@example.com", identity.RoleDriver)
		token, err := f.tokens.Issue(i.ID(), i.Role())
		require.NoError(t, err)
		require.NoError(t, f.denylist.Revoke(t.Context(), token.ID, token.ExpiresAt))

		_, err = f.authenticate(t, token.Value)
		require.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("should report a subject that no longer exists", func(t *testing.T) {
		f := newAuthFixture(t)
		token, err := f.tokens.Issue(kernel.NewUUID(), identity.RoleSender)
		require.NoError(t, err)

		_, err = f.authenticate(t, token.Value)
		require.ErrorIs(t, err, errs.ErrIdentityNotFound)
		assert.Equal(t, errs.KindIdentityNotFound, errs.KindOf(err))
	})

	t.Run("should refuse a suspended account", func(t *testing.T) {
		f := newAuthFixture(t)
		i := f.addIdentity(t, "driver@example.com", identity.RoleDriver)
		token, err := f.tokens.Issue(i.ID(), i.Role())
		require.NoError(t, err)
		i.SetActive(false, f.clock.Now())
		require.NoError(t, f.store.Create().IdentityRepository().Update(t.Context(), i))

		_, err = f.authenticate(t, token.Value)
		require.ErrorIs(t, err, errs.ErrAccountInactive)
	})

	t.Run("should take the role from the store", func(t *testing.T) {
		f := newAuthFixture(t)
		i := f.addIdentity(t, "sender@example.com", identity.RoleSender)
		token, err := f.tokens.Issue(i.ID(), identity.RoleAdmin)
		require.NoError(t, err)

		auth, err := f.authenticate(t, token.Value)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleSender, auth.Actor.Role)
	})

	t.Run("should require a token", func(t *testing.T) {
		_, err := queries.NewAuthenticateQuery(" ")
		require.ErrorIs(t, err, errs.ErrInvalidToken)
	})
}

func TestGetMeQueryHandler_Handle(t *testing.T) {
	t.Run("should return the caller's summary", func(t *testing.T) {
		f := newAuthFixture(t)
		i := f.addIdentity(t, "sender@example.com", identity.RoleSender)
		query, err := queries.NewGetMeQuery(services.Actor{ID: i.ID(), Role: i.Role()})
		require.NoError(t, err)

		summary, err := queries.NewGetMeQueryHandler(f.store).Handle(t.Context(), query)
		require.NoError(t, err)
		assert.Equal(t, i.Summary(), summary)
	})

	t.Run("should report a missing identity as identity not found", func(t *testing.T) {
		f := newAuthFixture(t)
		query, err := queries.NewGetMeQuery(services.Actor{ID: kernel.NewUUID(), Role: identity.RoleSender})
		require.NoError(t, err)

		_, err = queries.NewGetMeQueryHandler(f.store).Handle(t.Context(), query)
		require.ErrorIs(t, err, errs.ErrIdentityNotFound)
	})
}

func TestGetRequestQueryHandler_Handle(t *testing.T) {
	f := newAuthFixture(t)
	driver := f.addIdentity(t, "driver@example.com", identity.RoleDriver)
	sender := f.addIdentity(t, "sender@example.com", identity.RoleSender)
	stranger := f.addIdentity(t, "other@example.com", identity.RoleSender)
	o := contracttest.NewOffer(t, driver.ID())
	require.NoError(t, f.store.Create().OfferRepository().Add(t.Context(), o))
	r := contracttest.NewRequest(t, o, sender.ID())
	require.NoError(t, f.store.Create().RequestRepository().Add(t.Context(), r))

	handler := queries.NewGetRequestQueryHandler(f.store, services.NewAccessPolicy())
	get := func(actor services.Actor, id string) error {
		query, err := queries.NewGetRequestQuery(actor, id)
		require.NoError(t, err)
		found, err := handler.Handle(t.Context(), query)
		if err == nil {
			assert.Equal(t, r.ID(), found.ID())
		}
		return err
	}

	t.Run("should show the request to both parties and admins", func(t *testing.T) {
		require.NoError(t, get(services.Actor{ID: driver.ID(), Role: identity.RoleDriver}, r.ID().String()))
		require.NoError(t, get(services.Actor{ID: sender.ID(), Role: identity.RoleSender}, r.ID().String()))
		require.NoError(t, get(services.Actor{ID: kernel.NewUUID(), Role: identity.RoleAdmin}, r.ID().String()))
	})

	t.Run("should hide the request from everyone else", func(t *testing.T) {
		err := get(services.Actor{ID: stranger.ID(), Role: identity.RoleSender}, r.ID().String())
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should report a missing request", func(t *testing.T) {
		err := get(services.Actor{ID: sender.ID(), Role: identity.RoleSender}, kernel.NewUUID().String())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
