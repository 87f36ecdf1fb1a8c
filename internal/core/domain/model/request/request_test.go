package request_test

import (
	"testing"
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/offer"
	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newOffer(t *testing.T, driverID kernel.UUID) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(kernel.NewUUID(), driverID,
		offer.Route{From: "Casablanca", To: "Rabat", DepartureAt: now.Add(24 * time.Hour)},
		offer.Capacity{MaxWeightKg: decimal.NewFromInt(500), PricePerKg: decimal.NewFromInt(2)},
		now)
	require.NoError(t, err)
	return o
}

func validDetails() request.Details {
	return request.Details{
		Cargo:            request.Cargo{Type: "boxes", WeightKg: decimal.NewFromInt(40)},
		PickupLocation:   "Casablanca port",
		DeliveryLocation: "Rabat center",
		EstimatedPrice:   decimal.NewFromInt(80),
	}
}

func newRequest(t *testing.T) (*request.TransportRequest, kernel.UUID, kernel.UUID) {
	t.Helper()
	driverID, senderID := kernel.NewUUID(), kernel.NewUUID()
	r, err := request.NewTransportRequest(kernel.NewUUID(), newOffer(t, driverID), senderID, validDetails(), now)
	require.NoError(t, err)
	return r, driverID, senderID
}

func TestNewTransportRequest(t *testing.T) {
	t.Run("should start pending and capture the offer owner", func(t *testing.T) {
		driverID, senderID := kernel.NewUUID(), kernel.NewUUID()
		o := newOffer(t, driverID)

		r, err := request.NewTransportRequest(kernel.NewUUID(), o, senderID, validDetails(), now)

		require.NoError(t, err)
		assert.Equal(t, request.StatusPending, r.Status())
		assert.Equal(t, driverID, r.DriverID())
		assert.Equal(t, o.ID(), r.OfferID())
		assert.False(t, r.IsRatable())
	})

	t.Run("should validate cargo and locations", func(t *testing.T) {
		details := request.Details{Cargo: request.Cargo{WeightKg: decimal.Zero}}

		_, err := request.NewTransportRequest(kernel.NewUUID(), newOffer(t, kernel.NewUUID()), kernel.NewUUID(), details, now)

		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Contains(t, err.Error(), "cargo type")
		assert.Contains(t, err.Error(), "cargo weight")
		assert.Contains(t, err.Error(), "pickup location")
		assert.Contains(t, err.Error(), "delivery location")
	})

	t.Run("should reject closed offers", func(t *testing.T) {
		driverID := kernel.NewUUID()
		o, err := offer.Restore(offer.RestoreParams{ID: kernel.NewUUID(), DriverID: driverID, Status: offer.StatusCompleted})
		require.NoError(t, err)

		_, err = request.NewTransportRequest(kernel.NewUUID(), o, kernel.NewUUID(), validDetails(), now)

		require.ErrorIs(t, err, request.ErrOfferNotAcceptingRequests)
	})
}

func TestTransportRequest_Transition(t *testing.T) {
	t.Run("should walk the happy path and unlock rating on delivery", func(t *testing.T) {
		r, driverID, _ := newRequest(t)

		for i, target := range []request.Status{request.StatusAccepted, request.StatusInTransit, request.StatusDelivered} {
			at := now.Add(time.Duration(i+1) * time.Hour)
			event, changed, err := r.Transition(driverID, target, at)

			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, target, event.To)
			assert.Equal(t, driverID, event.ActorID)
			assert.Equal(t, at, event.OccurredAt)
			assert.Equal(t, at, r.UpdatedAt())
		}
		assert.True(t, r.IsRatable())
	})

	t.Run("same status should be a no-op that keeps updatedAt", func(t *testing.T) {
		r, driverID, _ := newRequest(t)
		_, _, err := r.Transition(driverID, request.StatusAccepted, now.Add(time.Hour))
		require.NoError(t, err)

		event, changed, err := r.Transition(driverID, request.StatusAccepted, now.Add(2*time.Hour))

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, request.StatusChanged{}, event)
		assert.Equal(t, now.Add(time.Hour), r.UpdatedAt())
	})

	t.Run("sender should cancel pending and accepted requests", func(t *testing.T) {
		r, _, senderID := newRequest(t)

		_, changed, err := r.Transition(senderID, request.StatusCancelled, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, request.StatusCancelled, r.Status())
	})

	t.Run("sender should not accept", func(t *testing.T) {
		r, _, senderID := newRequest(t)

		_, _, err := r.Transition(senderID, request.StatusAccepted, now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, request.StatusPending, r.Status())
	})

	t.Run("strangers should be forbidden", func(t *testing.T) {
		r, _, _ := newRequest(t)

		_, _, err := r.Transition(kernel.NewUUID(), request.StatusAccepted, now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("skipping states should be an invalid transition", func(t *testing.T) {
		r, driverID, _ := newRequest(t)

		_, _, err := r.Transition(driverID, request.StatusDelivered, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, request.StatusPending, r.Status())
		assert.Equal(t, now, r.UpdatedAt())
	})

	t.Run("terminal states should not move", func(t *testing.T) {
		r, driverID, _ := newRequest(t)
		_, _, err := r.Transition(driverID, request.StatusRejected, now)
		require.NoError(t, err)

		_, _, err = r.Transition(driverID, request.StatusAccepted, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("unknown target should be a validation error", func(t *testing.T) {
		r, driverID, _ := newRequest(t)

		_, _, err := r.Transition(driverID, request.Status("lost"), now)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}
