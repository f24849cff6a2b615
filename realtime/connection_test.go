package realtime

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-client/api"
	"chat-client/domain"
	"chat-client/domain/event"
	"chat-client/mocks"
	"chat-client/notify"
	"chat-client/store"
)

type stubCredentials struct {
	valid bool
	user  domain.User
}

func (s stubCredentials) IsValid() bool { return s.valid }

func (s stubCredentials) CurrentUser() (domain.User, bool) { return s.user, s.user.ID != "" }

type silentNoticer struct{}

func (silentNoticer) Notice(string) {}

// fakeBroadcaster speaks just enough of the wire protocol to drive the
// connection through handshake, subscription and one delivered message.
type fakeBroadcaster struct {
	server      *httptest.Server
	connections atomic.Int32
	subscribed  chan string
}

func newFakeBroadcaster(t *testing.T) *fakeBroadcaster {
	t.Helper()
	fake := &fakeBroadcaster{subscribed: make(chan string, 8)}
	upgrader := websocket.Upgrader{}

	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fake.connections.Add(1)

		established, _ := json.Marshal(`{"socket_id":"171.980"}`)
		_ = ws.WriteJSON(frame{Event: pusherConnectionEstablished, Data: established})

		for {
			var f frame
			if err := ws.ReadJSON(&f); err != nil {
				return
			}
			if f.Event != pusherSubscribe {
				continue
			}
			var body struct {
				Channel string `json:"channel"`
			}
			_ = json.Unmarshal(f.Data, &body)
			fake.subscribed <- body.Channel

			if body.Channel == presenceChannel {
				snapshot, _ := json.Marshal(`{"presence":{"ids":[7,2],"hash":{"7":{"name":"Alice"},"2":{"name":"Bob"}}}}`)
				_ = ws.WriteJSON(frame{
					Event:   pusherSubscriptionSucceeded,
					Channel: presenceChannel,
					Data:    snapshot,
				})
				_ = ws.WriteJSON(frame{
					Event:   `App\Events\MessageSent`,
					Channel: privateChannelPrefix + "7",
					Data: json.RawMessage(`{
						"message":{"id":42,"content":"hello","sender_id":2,"receiver_id":7,
							"created_at":"2024-06-01T12:00:00Z"},
						"sender":{"id":2,"name":"Bob"}
					}`),
				})
			}
		}
	}))
	t.Cleanup(fake.server.Close)
	return fake
}

func (f *fakeBroadcaster) config(t *testing.T) Config {
	t.Helper()
	parsed, err := url.Parse(f.server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	return Config{AppKey: "test-key", Host: parsed.Hostname(), Port: port}
}

func newConnectedFixture(t *testing.T) (*Connection, *store.Store, *fakeBroadcaster) {
	t.Helper()
	ctrl := gomock.NewController(t)

	caller := mocks.NewMockCaller(ctrl)
	caller.EXPECT().
		Post(api.EndpointBroadcastingAuth, gomock.Any()).
		Return(api.Response{Status: 200, Body: []byte(`{"auth":"test-key:signature"}`)}).
		AnyTimes()

	settings := mocks.NewMockISettingsRepository(ctrl)
	settings.EXPECT().Language().Return("zh").AnyTimes()
	settings.EXPECT().Theme().Return("light").AnyTimes()
	settings.EXPECT().SoundEnabled().Return(false).AnyTimes()

	s := store.New(settings, slog.Default())
	notifier := notify.NewNotifier(slog.Default(), settings, &bytes.Buffer{})

	dispatcher := NewDispatcher(slog.Default())
	dispatcher.Register(event.MessageSentType, NewMessageSentHandler(s, notifier, slog.Default()))
	dispatcher.Register(event.MessageReadType, NewMessageReadHandler(s))
	dispatcher.Register(event.PresenceHereType, NewPresenceHandler(s))
	dispatcher.Register(event.PresenceJoiningType, NewPresenceHandler(s))
	dispatcher.Register(event.PresenceLeavingType, NewPresenceHandler(s))
	dispatcher.Register(event.ConnectedType, NewLifecycleHandler(slog.Default()))
	dispatcher.Register(event.DisconnectedType, NewLifecycleHandler(slog.Default()))
	dispatcher.Register(event.ConnectionErrorType, NewLifecycleHandler(slog.Default()))

	fake := newFakeBroadcaster(t)
	conn := NewConnection(
		fake.config(t),
		caller,
		stubCredentials{valid: true, user: domain.User{ID: "7"}},
		dispatcher,
		silentNoticer{},
		slog.Default(),
	)
	t.Cleanup(conn.Shutdown)
	return conn, s, fake
}

func TestConnection_Start(t *testing.T) {
	t.Run("should handshake, subscribe both channels and deliver events", func(t *testing.T) {
		req := require.New(t)
		conn, s, fake := newConnectedFixture(t)

		conn.Start()

		channels := map[string]bool{}
		for i := 0; i < 2; i++ {
			select {
			case channel := <-fake.subscribed:
				channels[channel] = true
			case <-time.After(5 * time.Second):
				req.FailNow("timed out waiting for subscriptions")
			}
		}
		req.True(channels[privateChannelPrefix+"7"])
		req.True(channels[presenceChannel])

		req.Eventually(func() bool {
			return conn.State() == domain.Connected &&
				len(s.OnlineUsers()) == 2 &&
				len(s.Messages()) == 1
		}, 5*time.Second, 10*time.Millisecond)

		messages := s.Messages()
		req.Equal("42", messages[0].ID)
		req.Equal("2", messages[0].SenderID)
		req.False(messages[0].IsMine)
	})

	t.Run("should stay offline without valid credentials", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		fake := newFakeBroadcaster(t)

		conn := NewConnection(
			fake.config(t),
			mocks.NewMockCaller(ctrl),
			stubCredentials{valid: false},
			NewDispatcher(slog.Default()),
			silentNoticer{},
			slog.Default(),
		)
		t.Cleanup(conn.Shutdown)

		conn.Start()

		req.Equal(domain.Disconnected, conn.State())
		req.Equal(int32(0), fake.connections.Load())
	})

	t.Run("should ignore a second start while connected", func(t *testing.T) {
		req := require.New(t)
		conn, _, fake := newConnectedFixture(t)

		conn.Start()
		req.Eventually(func() bool {
			return conn.State() == domain.Connected
		}, 5*time.Second, 10*time.Millisecond)

		conn.Start()
		conn.Start()

		time.Sleep(50 * time.Millisecond)
		req.Equal(int32(1), fake.connections.Load())
	})

	t.Run("should park in errored state when nothing listens", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		fake := newFakeBroadcaster(t)
		cfg := fake.config(t)
		fake.server.Close()

		conn := NewConnection(
			cfg,
			mocks.NewMockCaller(ctrl),
			stubCredentials{valid: true, user: domain.User{ID: "7"}},
			NewDispatcher(slog.Default()),
			silentNoticer{},
			slog.Default(),
		)
		t.Cleanup(conn.Shutdown)

		conn.Start()
		req.Equal(domain.Errored, conn.State())
	})
}

func TestConnection_Disconnect(t *testing.T) {
	t.Run("should be safe in any state and any number of times", func(t *testing.T) {
		req := require.New(t)
		conn, _, _ := newConnectedFixture(t)

		conn.Disconnect()
		req.Equal(domain.Disconnected, conn.State())

		conn.Start()
		req.Eventually(func() bool {
			return conn.State() == domain.Connected
		}, 5*time.Second, 10*time.Millisecond)

		conn.Disconnect()
		conn.Disconnect()
		req.Equal(domain.Disconnected, conn.State())
	})
}

func TestConnection_Shutdown(t *testing.T) {
	t.Run("should tolerate teardown racing a dial in flight", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)

		// The broadcaster holds the upgrade until released, keeping the
		// dial in flight for as long as the test needs.
		dialing := make(chan struct{})
		release := make(chan struct{})
		upgrader := websocket.Upgrader{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(dialing)
			<-release
			ws, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			established, _ := json.Marshal(`{"socket_id":"171.980"}`)
			_ = ws.WriteJSON(frame{Event: pusherConnectionEstablished, Data: established})
			for {
				var f frame
				if err := ws.ReadJSON(&f); err != nil {
					return
				}
			}
		}))
		t.Cleanup(server.Close)

		parsed, err := url.Parse(server.URL)
		req.NoError(err)
		port, err := strconv.Atoi(parsed.Port())
		req.NoError(err)

		conn := NewConnection(
			Config{AppKey: "test-key", Host: parsed.Hostname(), Port: port},
			mocks.NewMockCaller(ctrl),
			stubCredentials{valid: true, user: domain.User{ID: "7"}},
			NewDispatcher(slog.Default()),
			silentNoticer{},
			slog.Default(),
		)

		go conn.Start()
		<-dialing

		done := make(chan struct{})
		go func() {
			conn.Shutdown()
			close(done)
		}()

		select {
		case <-done:
			req.FailNow("shutdown finished while the dial was still in flight")
		case <-time.After(100 * time.Millisecond):
		}

		close(release)

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			req.FailNow("shutdown did not finish after the dial resolved")
		}
		req.Equal(domain.Disconnected, conn.State())
	})
}

func TestConnection_Reconnect(t *testing.T) {
	t.Run("should come back with a single fresh connection", func(t *testing.T) {
		req := require.New(t)
		conn, _, fake := newConnectedFixture(t)

		conn.Start()
		req.Eventually(func() bool {
			return conn.State() == domain.Connected
		}, 5*time.Second, 10*time.Millisecond)

		conn.Reconnect()

		req.Eventually(func() bool {
			return conn.State() == domain.Connected && fake.connections.Load() == 2
		}, 5*time.Second, 10*time.Millisecond)
	})
}
