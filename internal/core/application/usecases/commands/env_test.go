package commands_test

import (
	"context"
	"testing"
	"time"

	"transportconnect/internal/adapters/contracttest"
	"transportconnect/internal/adapters/out/jwttoken"
	"transportconnect/internal/adapters/out/memory"
	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/model/outbox"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time          { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// testEnv wires every handler to one in-memory store.
type testEnv struct {
	t        *testing.T
	store    *memory.Store
	clock    *manualClock
	tokens   *jwttoken.Service
	denylist *memory.Denylist

	register      commands.RegisterCommandHandler
	login         commands.LoginCommandHandler
	logout        commands.LogoutCommandHandler
	createOffer   commands.CreateOfferCommandHandler
	deleteOffer   commands.DeleteOfferCommandHandler
	createRequest commands.CreateRequestCommandHandler
	transition    commands.TransitionRequestCommandHandler
	setActive     commands.SetIdentityActiveCommandHandler
	verify        commands.VerifyIdentityCommandHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &manualClock{now: contracttest.FixedNow}
	tokens, err := jwttoken.New(jwttoken.Config{Secret: testSecret}, clock)
	require.NoError(t, err)

	store := memory.NewStore()
	factories := commands.NewFactories(store)
	hasher := contracttest.PlainHasher{}
	policy := services.NewAccessPolicy()
	denylist := memory.NewDenylist(clock)

	return &testEnv{
		t:        t,
		store:    store,
		clock:    clock,
		tokens:   tokens,
		denylist: denylist,

		register:      commands.NewRegisterCommandHandler(factories.Identity(), hasher, tokens, clock),
		login:         commands.NewLoginCommandHandler(factories.Identity(), hasher, tokens),
		logout:        commands.NewLogoutCommandHandler(tokens, denylist),
		createOffer:   commands.NewCreateOfferCommandHandler(factories.Offer(), policy, clock),
		deleteOffer:   commands.NewDeleteOfferCommandHandler(factories.Offer(), policy),
		createRequest: commands.NewCreateRequestCommandHandler(factories.Request(), policy, clock),
		transition:    commands.NewTransitionRequestCommandHandler(factories.All(), policy, clock),
		setActive:     commands.NewSetIdentityActiveCommandHandler(factories.Identity(), policy, clock),
		verify:        commands.NewVerifyIdentityCommandHandler(factories.Identity(), policy, clock),
	}
}

func (e *testEnv) registerAs(email string, role identity.Role) services.Actor {
	e.t.Helper()
	cmd, err := commands.NewRegisterCommand("Test", "User", email, "secret-pass", string(role), "+48 600 100 200")
	require.NoError(e.t, err)
	result, err := e.register.Handle(e.t.Context(), cmd)
	require.NoError(e.t, err)
	return services.Actor{ID: result.Identity.ID, Role: result.Identity.Role}
}

func (e *testEnv) registerAdmin() services.Actor {
	e.t.Helper()
	cmd, err := commands.NewRegisterAdminCommand("Ada", "Admin", "admin@example.com", "secret-pass", "+48 600 000 000")
	require.NoError(e.t, err)
	result, err := e.register.Handle(e.t.Context(), cmd)
	require.NoError(e.t, err)
	return services.Actor{ID: result.Identity.ID, Role: result.Identity.Role}
}

func (e *testEnv) publishOffer(driver services.Actor) *offer.Offer {
	e.t.Helper()
	cmd, err := commands.NewCreateOfferCommand(driver, offer.Route{
		From:        "Warsaw",
		To:          "Berlin",
		DepartureAt: contracttest.FixedNow.Add(48 * time.Hour),
	}, offer.Capacity{
		MaxWeightKg:      decimal.NewFromInt(1000),
		AvailableSpaceM3: decimal.NewFromInt(12),
		PricePerKg:       decimal.RequireFromString("0.5"),
		CargoTypes:       []string{"pallets"},
	})
	require.NoError(e.t, err)
	created, err := e.createOffer.Handle(e.t.Context(), cmd)
	require.NoError(e.t, err)
	return created
}

func testDetails() request.Details {
	return request.Details{
		Cargo: request.Cargo{
			Type:     "pallets",
			WeightKg: decimal.NewFromInt(200),
		},
		PickupLocation:   "Warsaw, Prosta 20",
		DeliveryLocation: "Berlin, Torstrasse 5",
		EstimatedPrice:   decimal.NewFromInt(100),
	}
}

func (e *testEnv) requestTransport(sender services.Actor, offerID kernel.UUID) *request.TransportRequest {
	e.t.Helper()
	cmd, err := commands.NewCreateRequestCommand(sender, offerID.String(), testDetails())
	require.NoError(e.t, err)
	created, err := e.createRequest.Handle(e.t.Context(), cmd)
	require.NoError(e.t, err)
	return created
}

func (e *testEnv) move(actor services.Actor, requestID kernel.UUID, target request.Status) (*request.TransportRequest, error) {
	e.t.Helper()
	cmd, err := commands.NewTransitionRequestCommand(actor, requestID.String(), string(target))
	require.NoError(e.t, err)
	return e.transition.Handle(e.t.Context(), cmd)
}

func (e *testEnv) storedIdentity(id kernel.UUID) *identity.Identity {
	e.t.Helper()
	found, err := e.store.Create().IdentityRepository().Get(e.t.Context(), id)
	require.NoError(e.t, err)
	return found
}

func (e *testEnv) storedRequest(id kernel.UUID) *request.TransportRequest {
	e.t.Helper()
	found, err := e.store.Create().RequestRepository().Get(e.t.Context(), id)
	require.NoError(e.t, err)
	return found
}

func (e *testEnv) pendingMessages() []*outbox.Message {
	e.t.Helper()
	messages, err := e.store.Create().OutboxRepository().ListPending(e.t.Context(), 0)
	require.NoError(e.t, err)
	return messages
}

// deal is one driver, one sender and a pending request between them.
type deal struct {
	driver  services.Actor
	sender  services.Actor
	offer   *offer.Offer
	request *request.TransportRequest
}

func (e *testEnv) newDeal() deal {
	e.t.Helper()
	driver := e.registerAs("driver@example.com", identity.RoleDriver)
	sender := e.registerAs("sender@example.com", identity.RoleSender)
	o := e.publishOffer(driver)
	return deal{driver: driver, sender: sender, offer: o, request: e.requestTransport(sender, o.ID())}
}
