// Package contracttest holds behaviour every persistence adapter must share.
// Adapter test packages call the Run* functions with a factory for their own store.
package contracttest

import (
	"strings"
	"testing"
	"time"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/model/request"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// FixedNow is truncated to the second so it survives every store's timestamp precision.
var FixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// PlainHasher marks digests with a prefix. It keeps tests fast; never use it outside tests.
type PlainHasher struct{}

func (PlainHasher) Hash(plain string) (identity.PasswordDigest, error) {
	return identity.PasswordDigest("digest:" + plain), nil
}

func (PlainHasher) Compare(digest identity.PasswordDigest, plain string) bool {
	return string(digest) == "digest:"+plain
}

func (PlainHasher) IsDigest(value string) bool {
	return strings.HasPrefix(value, "digest:")
}

func NewIdentity(t *testing.T, email string, role identity.Role) *identity.Identity {
	t.Helper()
	addr, err := kernel.NewEmail(email)
	require.NoError(t, err)
	i, err := identity.Register(kernel.NewUUID(), identity.Registration{
		FirstName: "Test",
		LastName:  "User",
		Email:     addr,
		Password:  "secret-pass",
		Role:      role,
		Phone:     "+48 600 100 200",
	}, PlainHasher{}, FixedNow)
	require.NoError(t, err)
	return i
}

func NewOffer(t *testing.T, driverID kernel.UUID) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(kernel.NewUUID(), driverID, offer.Route{
		From:        "Warsaw",
		To:          "Berlin",
		DepartureAt: FixedNow.Add(48 * time.Hour),
	}, offer.Capacity{
		MaxWeightKg:      decimal.RequireFromString("1200.5"),
		AvailableSpaceM3: decimal.RequireFromString("14"),
		PricePerKg:       decimal.RequireFromString("0.75"),
		CargoTypes:       []string{"pallets", "furniture"},
	}, FixedNow)
	require.NoError(t, err)
	return o
}

func NewRequest(t *testing.T, o *offer.Offer, senderID kernel.UUID) *request.TransportRequest {
	t.Helper()
	r, err := request.NewTransportRequest(kernel.NewUUID(), o, senderID, request.Details{
		Cargo: request.Cargo{
			Type:     "furniture",
			WeightKg: decimal.RequireFromString("80"),
			Dimensions: request.Dimensions{
				Length: decimal.RequireFromString("2"),
				Width:  decimal.RequireFromString("0.9"),
				Height: decimal.RequireFromString("1.1"),
			},
			Description: "Oak wardrobe",
		},
		PickupLocation:   "Warsaw, Marszalkowska 1",
		DeliveryLocation: "Berlin, Alexanderplatz 3",
		EstimatedPrice:   decimal.RequireFromString("60"),
		Notes:            "Fragile",
	}, FixedNow)
	require.NoError(t, err)
	return r
}
