// Package session ties one login together: exactly one state tree and one
// realtime connection per authenticated session, created at login and torn
// down at logout. Components receive the session by reference; there are no
// ambient globals.
package session

import (
	"log/slog"

	"chat-client/auth"
	"chat-client/domain"
	"chat-client/realtime"
	"chat-client/store"
)

type Session struct {
	Store    *store.Store
	Tokens   *auth.TokenManager
	Realtime *realtime.Connection
	log      *slog.Logger
}

func New(store *store.Store, tokens *auth.TokenManager, conn *realtime.Connection, log *slog.Logger) *Session {
	return &Session{Store: store, Tokens: tokens, Realtime: conn, log: log}
}

// Login authenticates, seeds the state tree with the user and brings the
// realtime channel up.
func (s *Session) Login(identifier, secret string) bool {
	if !s.Tokens.Authenticate(identifier, secret) {
		return false
	}
	if user, ok := s.Tokens.CurrentUser(); ok {
		s.Store.SetUser(user)
	}
	s.EnsureStarted()
	return true
}

// Resume picks up a persisted session: a still-valid bundle is used as-is,
// an expired one is refreshed once. Returns false when neither works.
func (s *Session) Resume() bool {
	if !s.Tokens.IsValid() && !s.Tokens.Refresh() {
		return false
	}
	user, ok := s.Tokens.CurrentUser()
	if !ok {
		return false
	}
	s.Store.SetUser(user)
	s.EnsureStarted()
	return true
}

// EnsureStarted is the route-guard equivalent: start realtime iff a session
// exists and no connection is live. Safe to call on every navigation.
func (s *Session) EnsureStarted() {
	if s.Realtime.State() != domain.Disconnected {
		return
	}
	s.Realtime.Start()
}

// Logout tears the session down locally: connection, credentials, state.
// Server-side revocation is the account service's business and happens
// before this.
func (s *Session) Logout() {
	s.Realtime.Disconnect()
	s.Tokens.Logout()
	s.Store.ClearUserData()
	s.log.Info("Session closed")
}

// Close releases the realtime dispatch loop. The session is unusable after.
func (s *Session) Close() {
	s.Realtime.Shutdown()
}
