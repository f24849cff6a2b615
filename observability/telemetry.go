// Package observability keeps the client's runtime counters: traffic, the
// realtime channel's health and process memory. Counters are atomic; the
// snapshot is computed on demand.
package observability

import (
	"runtime"
	"sync/atomic"
	"time"

	"chat-client/domain/event"
)

// Snapshot is one point-in-time view of the counters.
type Snapshot struct {
	MessagesSent     uint64 `json:"messages_sent"`
	MessagesReceived uint64 `json:"messages_received"`
	ReadReceipts     uint64 `json:"read_receipts"`
	PresenceEvents   uint64 `json:"presence_events"`
	ConnectionErrors uint64 `json:"connection_errors"`
	AllocMemMb       uint64 `json:"alloc_mem_mb"`
	NumGC            uint32 `json:"num_gc"`
	Uptime           time.Duration
}

type Telemetry struct {
	started time.Time

	messagesSent     atomic.Uint64
	messagesReceived atomic.Uint64
	readReceipts     atomic.Uint64
	presenceEvents   atomic.Uint64
	connectionErrors atomic.Uint64
}

func NewTelemetry() *Telemetry {
	return &Telemetry{started: time.Now()}
}

// IncrMessageSent records one outbound message.
func (t *Telemetry) IncrMessageSent() {
	t.messagesSent.Add(1)
}

// Handle counts inbound realtime events. Registered on the dispatcher next
// to the state-mutating handlers; counting never fails.
func (t *Telemetry) Handle(evt event.Event) error {
	switch evt.Type {
	case event.MessageSentType:
		t.messagesReceived.Add(1)
	case event.MessageReadType:
		t.readReceipts.Add(1)
	case event.PresenceHereType, event.PresenceJoiningType, event.PresenceLeavingType:
		t.presenceEvents.Add(1)
	case event.ConnectionErrorType:
		t.connectionErrors.Add(1)
	}
	return nil
}

// Latest folds the counters and the Go memory stats into one snapshot.
func (t *Telemetry) Latest() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return Snapshot{
		MessagesSent:     t.messagesSent.Load(),
		MessagesReceived: t.messagesReceived.Load(),
		ReadReceipts:     t.readReceipts.Load(),
		PresenceEvents:   t.presenceEvents.Load(),
		ConnectionErrors: t.connectionErrors.Load(),
		AllocMemMb:       m.Alloc / 1024 / 1024,
		NumGC:            m.NumGC,
		Uptime:           time.Since(t.started).Round(time.Second),
	}
}
