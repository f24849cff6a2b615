package realtime

import (
	"fmt"
	"log/slog"

	"chat-client/domain/event"
	"chat-client/errors"
	"chat-client/notify"
	"chat-client/store"
)

// Dispatcher consumes the inbound event channel on a single goroutine and
// routes each event to its handler. Every invocation runs inside its own
// failure boundary: one malformed event never stops the loop.
type Dispatcher struct {
	handlers map[event.Type][]event.Handler
	log      *slog.Logger
}

func NewDispatcher(log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[event.Type][]event.Handler),
		log:      log,
	}
}

// Register appends a handler to the chain for one event type. Registration
// happens during wiring, before the loop runs.
func (d *Dispatcher) Register(eventType event.Type, handler event.Handler) {
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// Run blocks until the event channel closes.
func (d *Dispatcher) Run(events <-chan event.Event) {
	for evt := range events {
		chain, ok := d.handlers[evt.Type]
		if !ok {
			d.log.Debug("No handler registered", "type", evt.Type)
			continue
		}
		for _, handler := range chain {
			d.dispatch(handler, evt)
		}
	}
}

func (d *Dispatcher) dispatch(handler event.Handler, evt event.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Handler panicked", "type", evt.Type, "panic", r)
		}
	}()

	if err := handler.Handle(evt); err != nil {
		d.log.Error("Handler failed", "type", evt.Type, "err", err)
	}
}

// MessageSentHandler appends the delivered message, bumps the unread
// counter and fires the best-effort cues.
type MessageSentHandler struct {
	store    *store.Store
	notifier *notify.Notifier
	log      *slog.Logger
}

func NewMessageSentHandler(store *store.Store, notifier *notify.Notifier, log *slog.Logger) *MessageSentHandler {
	return &MessageSentHandler{store: store, notifier: notifier, log: log}
}

func (h *MessageSentHandler) Handle(evt event.Event) error {
	payload, ok := evt.Payload.(event.MessageSent)
	if !ok {
		return fmt.Errorf("%w: expected MessageSent, got %T", errors.ErrInvalidPayload, evt.Payload)
	}

	h.store.AddMessage(payload.Message)
	h.store.IncrementUnread()

	// Cues are allowed to fail; a missing notifier binary or muted terminal
	// never reaches the caller.
	title := fmt.Sprintf("Message from %s", payload.Sender.Name)
	if err := h.notifier.Desktop(title, payload.Message.Content); err != nil {
		h.log.Debug("Desktop notification skipped", "err", err)
	}
	if err := h.notifier.Sound(); err != nil {
		h.log.Debug("Sound cue skipped", "err", err)
	}
	return nil
}

// MessageReadHandler forwards the read receipt to the store.
type MessageReadHandler struct {
	store *store.Store
}

func NewMessageReadHandler(store *store.Store) *MessageReadHandler {
	return &MessageReadHandler{store: store}
}

func (h *MessageReadHandler) Handle(evt event.Event) error {
	payload, ok := evt.Payload.(event.MessageRead)
	if !ok {
		return fmt.Errorf("%w: expected MessageRead, got %T", errors.ErrInvalidPayload, evt.Payload)
	}
	h.store.MarkMessageRead(payload.MessageID)
	return nil
}

// PresenceHandler keeps the online set in sync: wholesale replacement on the
// initial snapshot, id-keyed insert/remove afterwards.
type PresenceHandler struct {
	store *store.Store
}

func NewPresenceHandler(store *store.Store) *PresenceHandler {
	return &PresenceHandler{store: store}
}

func (h *PresenceHandler) Handle(evt event.Event) error {
	switch payload := evt.Payload.(type) {
	case event.PresenceHere:
		h.store.SetOnlineUsers(payload.Users)
	case event.PresenceJoining:
		h.store.AddOnlineUser(payload.User)
	case event.PresenceLeaving:
		h.store.RemoveOnlineUser(payload.UserID)
	default:
		return fmt.Errorf("%w: unexpected presence payload %T", errors.ErrInvalidPayload, evt.Payload)
	}
	return nil
}

// LifecycleHandler records connection transitions; the connection itself
// already surfaced any user-facing notice.
type LifecycleHandler struct {
	log *slog.Logger
}

func NewLifecycleHandler(log *slog.Logger) *LifecycleHandler {
	return &LifecycleHandler{log: log}
}

func (h *LifecycleHandler) Handle(evt event.Event) error {
	switch payload := evt.Payload.(type) {
	case event.ConnectionError:
		h.log.Warn("Realtime connection error", "reason", payload.Reason)
	default:
		h.log.Info("Realtime connection state changed", "type", evt.Type)
	}
	return nil
}
