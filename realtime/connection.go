// Package realtime owns the publish/subscribe connection: lifecycle,
// channel subscriptions and the dispatch of inbound events into the session
// store. Exactly one underlying connection exists at a time; Start while
// Connecting or Connected is a deliberate no-op.
package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chat-client/api"
	"chat-client/domain"
	"chat-client/domain/event"
	"chat-client/errors"
)

const (
	presenceChannel      = "presence-online"
	privateChannelPrefix = "private-App.User."

	reconnectDelay   = time.Second
	handshakeTimeout = 15 * time.Second
	eventBufferSize  = 64

	msgRealtimeFailed = "realtime messaging unavailable"
	msgRealtimeLost   = "realtime connection lost"
)

// Noticer matches notify.Noticer; declared locally so tests can stub it
// without pulling the notify package in.
type Noticer interface {
	Notice(text string)
}

// CredentialSource is the slice of the token manager the connection needs.
type CredentialSource interface {
	IsValid() bool
	CurrentUser() (domain.User, bool)
}

// Config carries the broadcaster options from the environment.
type Config struct {
	AppKey   string
	Cluster  string
	Host     string
	Port     int
	ForceTLS bool
}

type Connection struct {
	cfg     Config
	api     api.Caller
	creds   CredentialSource
	noticer Noticer
	log     *slog.Logger

	dispatcher *Dispatcher
	events     chan event.Event
	pumps      sync.WaitGroup
	shutdown   sync.Once

	mu       sync.Mutex
	state    domain.ConnectionState
	ws       *websocket.Conn
	closing  bool
	stopped  bool
	socketID string
}

// NewConnection wires the connection to its dispatcher and starts the single
// consuming goroutine. The connection stays Disconnected until Start.
func NewConnection(
	cfg Config,
	caller api.Caller,
	creds CredentialSource,
	dispatcher *Dispatcher,
	noticer Noticer,
	log *slog.Logger,
) *Connection {
	c := &Connection{
		cfg:        cfg,
		api:        caller,
		creds:      creds,
		noticer:    noticer,
		log:        log,
		dispatcher: dispatcher,
		events:     make(chan event.Event, eventBufferSize),
		state:      domain.Disconnected,
	}
	go c.dispatcher.Run(c.events)
	return c
}

func (c *Connection) State() domain.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start opens the connection. Without a valid credential bundle it logs and
// returns; from any state but Disconnected it is ignored, which is the guard
// against overlapping reconnect attempts creating duplicate connections.
func (c *Connection) Start() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if c.state != domain.Disconnected {
		c.log.Warn("Start ignored", "state", c.state.String())
		c.mu.Unlock()
		return
	}
	if !c.creds.IsValid() {
		c.log.Info("No valid credentials, realtime stays offline")
		c.mu.Unlock()
		return
	}
	user, ok := c.creds.CurrentUser()
	if !ok {
		c.log.Info("No authenticated user, realtime stays offline")
		c.mu.Unlock()
		return
	}
	c.state = domain.Connecting
	c.closing = false
	// The pump slot is claimed before the dial so Shutdown waits for an
	// in-flight Start to resolve before closing the event channel.
	c.pumps.Add(1)
	c.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	ws, _, err := dialer.Dial(c.endpoint(), nil)
	if err != nil {
		defer c.pumps.Done()
		c.mu.Lock()
		if c.stopped {
			c.state = domain.Disconnected
			c.mu.Unlock()
			return
		}
		c.state = domain.Errored
		c.mu.Unlock()
		c.log.Error("Dial failed", "err", fmt.Errorf("%w: %v", errors.ErrRealtimeConnection, err))
		c.noticer.Notice(msgRealtimeFailed)
		c.emit(event.Event{Type: event.ConnectionErrorType, Payload: event.ConnectionError{Reason: err.Error()}})
		return
	}

	c.mu.Lock()
	if c.stopped || c.closing {
		// Torn down while the dial was in flight: the fresh socket is
		// discarded, never pumped.
		c.state = domain.Disconnected
		c.mu.Unlock()
		_ = ws.Close()
		c.pumps.Done()
		return
	}
	c.ws = ws
	c.mu.Unlock()
	go c.readPump(ws, user.ID)
}

// Disconnect tears the connection down. Safe to call at any time, in any
// state, any number of times.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	ws := c.ws
	c.ws = nil
	c.closing = true
	c.state = domain.Disconnected
	c.socketID = ""
	c.mu.Unlock()

	if ws != nil {
		_ = ws.Close()
	}
}

// Reconnect is disconnect, a fixed one second delay, then start. Repeated
// calls each schedule their own delay; the Start guard keeps a second
// attempt from racing an in-flight one.
func (c *Connection) Reconnect() {
	c.log.Info("Reconnecting realtime channel")
	c.Disconnect()
	time.AfterFunc(reconnectDelay, c.Start)
}

// Shutdown releases the dispatch goroutine. The connection is unusable
// afterwards; sessions call this exactly once at teardown. The event channel
// closes only after the read pump has drained and any in-flight dial has
// resolved, so a late read error cannot emit into a closed channel.
func (c *Connection) Shutdown() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()

	c.Disconnect()
	c.pumps.Wait()
	c.shutdown.Do(func() { close(c.events) })
}

func (c *Connection) endpoint() string {
	scheme := "ws"
	if c.cfg.ForceTLS {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s:%d/app/%s?protocol=7&client=chat-client&version=0.1.0",
		scheme, c.cfg.Host, c.cfg.Port, c.cfg.AppKey)
}

func (c *Connection) readPump(ws *websocket.Conn, userID string) {
	defer c.pumps.Done()
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}
		c.handleFrame(data, userID)
	}
}

func (c *Connection) handleReadError(err error) {
	c.mu.Lock()
	intentional := c.closing
	c.ws = nil
	state := c.state
	if intentional || state == domain.Disconnected {
		c.state = domain.Disconnected
		c.mu.Unlock()
		c.emit(event.Event{Type: event.DisconnectedType})
		return
	}
	if state == domain.Errored {
		// Already surfaced by the error frame path.
		c.mu.Unlock()
		return
	}
	c.state = domain.Errored
	c.mu.Unlock()

	c.log.Error("Realtime read failed", "err", err)
	c.noticer.Notice(msgRealtimeLost)
	c.emit(event.Event{Type: event.ConnectionErrorType, Payload: event.ConnectionError{Reason: err.Error()}})
}

// handleFrame decodes one inbound frame and emits the matching typed event.
// A frame that fails to decode is logged and dropped; it never stops the
// pump or the connection.
func (c *Connection) handleFrame(data []byte, userID string) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		c.log.Error("Undecodable frame", "err", err)
		return
	}

	switch f.Event {
	case pusherConnectionEstablished:
		socketID, err := decodeEstablished(f.Data)
		if err != nil {
			c.log.Error("Bad handshake frame", "err", err)
			return
		}
		c.mu.Lock()
		c.socketID = socketID
		c.state = domain.Connected
		c.mu.Unlock()
		c.emit(event.Event{Type: event.ConnectedType})
		c.subscribe(privateChannelPrefix + userID)
		c.subscribe(presenceChannel)

	case pusherPing:
		c.send(frame{Event: pusherPong})

	case pusherError:
		c.handleErrorFrame(f.Data)

	case pusherSubscriptionSucceeded:
		if f.Channel != presenceChannel {
			c.log.Debug("Subscribed", "channel", f.Channel)
			return
		}
		payload, err := decodePresenceSnapshot(f.Data)
		if err != nil {
			c.log.Error("Bad presence snapshot", "err", err)
			return
		}
		c.emit(event.Event{Type: event.PresenceHereType, Payload: payload})

	case pusherMemberAdded:
		payload, err := decodeMemberAdded(f.Data)
		if err != nil {
			c.log.Error("Bad member_added frame", "err", err)
			return
		}
		c.emit(event.Event{Type: event.PresenceJoiningType, Payload: payload})

	case pusherMemberRemoved:
		payload, err := decodeMemberRemoved(f.Data)
		if err != nil {
			c.log.Error("Bad member_removed frame", "err", err)
			return
		}
		c.emit(event.Event{Type: event.PresenceLeavingType, Payload: payload})

	default:
		c.handleAppEvent(f)
	}
}

func (c *Connection) handleAppEvent(f frame) {
	switch shortEventName(f.Event) {
	case eventMessageSent:
		payload, err := decodeMessageSent(f.Data)
		if err != nil {
			c.log.Error("Bad MessageSent frame", "err", err)
			return
		}
		c.emit(event.Event{Type: event.MessageSentType, Payload: payload})

	case eventMessageRead:
		payload, err := decodeMessageRead(f.Data)
		if err != nil {
			c.log.Error("Bad MessageRead frame", "err", err)
			return
		}
		c.emit(event.Event{Type: event.MessageReadType, Payload: payload})

	default:
		c.log.Debug("Unhandled event", "event", f.Event, "channel", f.Channel)
	}
}

// handleErrorFrame parks the connection in Errored. It stays inert until an
// explicit Reconnect.
func (c *Connection) handleErrorFrame(raw json.RawMessage) {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(frameData(raw), &body)
	if body.Message == "" {
		body.Message = "broadcaster reported an error"
	}

	c.mu.Lock()
	c.state = domain.Errored
	ws := c.ws
	c.ws = nil
	c.mu.Unlock()
	if ws != nil {
		_ = ws.Close()
	}

	c.log.Error("Realtime error frame", "message", body.Message)
	c.noticer.Notice(msgRealtimeFailed)
	c.emit(event.Event{Type: event.ConnectionErrorType, Payload: event.ConnectionError{Reason: body.Message}})
}

// subscribe sends the subscription frame for one channel, first obtaining
// the broadcaster signature for private and presence channels through the
// HTTP layer (which attaches the bearer token).
func (c *Connection) subscribe(channel string) {
	payload := map[string]string{"channel": channel}

	if strings.HasPrefix(channel, "private-") || strings.HasPrefix(channel, "presence-") {
		c.mu.Lock()
		socketID := c.socketID
		c.mu.Unlock()

		resp := c.api.Post(api.EndpointBroadcastingAuth, url.Values{
			"channel_name": {channel},
			"socket_id":    {socketID},
		})
		if !resp.OK() {
			c.log.Error("Channel authorization rejected", "channel", channel, "status", resp.Status)
			return
		}
		var body struct {
			Auth        string `json:"auth"`
			ChannelData string `json:"channel_data"`
		}
		if err := resp.Decode(&body); err != nil {
			c.log.Error("Unreadable channel authorization", "channel", channel, "err", err)
			return
		}
		payload["auth"] = body.Auth
		if body.ChannelData != "" {
			payload["channel_data"] = body.ChannelData
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("Failed to build subscribe frame", "channel", channel, "err", err)
		return
	}
	c.send(frame{Event: pusherSubscribe, Data: data})
}

func (c *Connection) send(f frame) {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()
	if ws == nil {
		c.log.Warn("Dropping outbound frame", "event", f.Event, "err", errors.ErrNotConnected)
		return
	}
	if err := ws.WriteJSON(f); err != nil {
		c.log.Error("Failed to write frame", "event", f.Event, "err", err)
	}
}

func (c *Connection) emit(evt event.Event) {
	c.events <- evt
}
