package observability

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chat-client/domain/event"
)

func TestTelemetry(t *testing.T) {
	t.Run("should count events by kind", func(t *testing.T) {
		req := require.New(t)
		telemetry := NewTelemetry()

		req.NoError(telemetry.Handle(event.Event{Type: event.MessageSentType}))
		req.NoError(telemetry.Handle(event.Event{Type: event.MessageSentType}))
		req.NoError(telemetry.Handle(event.Event{Type: event.MessageReadType}))
		req.NoError(telemetry.Handle(event.Event{Type: event.PresenceJoiningType}))
		req.NoError(telemetry.Handle(event.Event{Type: event.ConnectionErrorType}))
		req.NoError(telemetry.Handle(event.Event{Type: event.ConnectedType})) // lifecycle, not counted
		telemetry.IncrMessageSent()

		snapshot := telemetry.Latest()
		req.Equal(uint64(1), snapshot.MessagesSent)
		req.Equal(uint64(2), snapshot.MessagesReceived)
		req.Equal(uint64(1), snapshot.ReadReceipts)
		req.Equal(uint64(1), snapshot.PresenceEvents)
		req.Equal(uint64(1), snapshot.ConnectionErrors)
	})
}
