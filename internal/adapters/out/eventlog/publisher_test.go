package eventlog_test

import (
	"testing"
	"time"

	"transportconnect/internal/adapters/out/eventlog"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublisher_Publish(t *testing.T) {
	t.Run("should log the event with its identifiers", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		p := eventlog.New(zap.New(core))
		aggregateID := kernel.NewUUID()
		m, err := outbox.NewMessage("transport_request.status_changed", aggregateID, map[string]string{"to": "accepted"}, time.Now())
		require.NoError(t, err)

		require.NoError(t, p.Publish(t.Context(), m))

		entries := logs.FilterMessage("domain event").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "transport_request.status_changed", fields["event_type"])
		assert.Equal(t, aggregateID.String(), fields["aggregate_id"])
		assert.Equal(t, "event_publisher", fields["component"])
	})
}
