package request_test

import (
	"testing"

	"transportconnect/internal/core/domain/model/request"
	"transportconnect/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edgeCase struct {
	from, to request.Status
}

var listedEdges = map[edgeCase]request.Party{
	{request.StatusPending, request.StatusAccepted}:    request.PartyOfferDriver,
	{request.StatusPending, request.StatusRejected}:    request.PartyOfferDriver,
	{request.StatusPending, request.StatusCancelled}:   request.PartyRequestingSender,
	{request.StatusAccepted, request.StatusInTransit}:  request.PartyOfferDriver,
	{request.StatusAccepted, request.StatusCancelled}:  request.PartyRequestingSender,
	{request.StatusInTransit, request.StatusDelivered}: request.PartyOfferDriver,
}

func TestCheckTransition(t *testing.T) {
	parties := []request.Party{request.PartyOfferDriver, request.PartyRequestingSender}

	t.Run("should accept exactly the listed edges for their party", func(t *testing.T) {
		for _, from := range request.AllStatuses() {
			for _, to := range request.AllStatuses() {
				for _, party := range parties {
					err := request.CheckTransition(from, to, party)
					owner, listed := listedEdges[edgeCase{from, to}]

					switch {
					case listed && owner == party:
						require.NoError(t, err, "%s -> %s by %s", from, to, party)
					case listed:
						require.ErrorIs(t, err, errs.ErrForbidden, "%s -> %s by %s", from, to, party)
					default:
						require.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s by %s", from, to, party)
					}
				}
			}
		}
	})

	t.Run("should not allow cancelling an in-transit request", func(t *testing.T) {
		err := request.CheckTransition(request.StatusInTransit, request.StatusCancelled, request.PartyRequestingSender)

		var transitionErr *request.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, []request.Status{request.StatusDelivered}, transitionErr.Allowed)
		assert.Contains(t, err.Error(), "in_transit -> cancelled")
	})

	t.Run("should describe terminal states", func(t *testing.T) {
		err := request.CheckTransition(request.StatusDelivered, request.StatusPending, request.PartyOfferDriver)

		assert.Contains(t, err.Error(), "none (terminal state)")
	})
}

func TestStatus(t *testing.T) {
	t.Run("should mark rejected, delivered and cancelled terminal", func(t *testing.T) {
		terminal := map[request.Status]bool{
			request.StatusRejected:  true,
			request.StatusDelivered: true,
			request.StatusCancelled: true,
		}
		for _, s := range request.AllStatuses() {
			assert.Equal(t, terminal[s], s.IsTerminal(), s)
		}
	})

	t.Run("should parse known statuses", func(t *testing.T) {
		s, err := request.ParseStatus(" IN_TRANSIT ")
		require.NoError(t, err)
		assert.Equal(t, request.StatusInTransit, s)

		_, err = request.ParseStatus("lost")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = request.ParseStatus("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
