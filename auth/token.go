// Package auth owns the OAuth token lifecycle: password grant, refresh
// grant, expiry tracking and logout. Every operation reports failure as a
// plain false; callers decide what the user sees.
package auth

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chat-client/api"
	"chat-client/domain"
	"chat-client/errors"
	"chat-client/repositories"
)

// validityMargin is subtracted from the stored expiry so a token never
// expires mid-request.
const validityMargin = 5 * time.Minute

type TokenManager struct {
	api          api.Caller
	creds        repositories.ICredentialRepository
	clientID     string
	clientSecret string
	now          func() time.Time
	log          *slog.Logger
}

func NewTokenManager(
	caller api.Caller,
	creds repositories.ICredentialRepository,
	clientID, clientSecret string,
	log *slog.Logger,
) *TokenManager {
	return &TokenManager{
		api:          caller,
		creds:        creds,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
		log:          log,
	}
}

// wireTokenResponse is the /oauth/token body. User ids arrive as JSON
// numbers; they are normalized to strings here at the boundary.
type wireTokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
	TokenType    string   `json:"token_type"`
	User         wireUser `json:"user"`
}

type wireUser struct {
	ID     json.Number `json:"id"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar"`
	Email  string      `json:"email"`
}

// Authenticate performs the password grant and persists the resulting
// bundle with a computed expiry. Returns false on any failure.
func (m *TokenManager) Authenticate(identifier, secret string) bool {
	if err := ValidateLogin(LoginRequest{Identifier: identifier, Secret: secret}); err != nil {
		m.log.Warn("Login input rejected", "err", err)
		return false
	}

	resp := m.api.Post(api.EndpointOAuth, url.Values{
		"grant_type":    {"password"},
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
		"username":      {identifier},
		"password":      {secret},
		"scope":         {"*"},
	})
	if !resp.OK() {
		m.log.Warn("Password grant rejected", "status", resp.Status, "err", resp.Err)
		return false
	}

	var body wireTokenResponse
	if err := resp.Decode(&body); err != nil {
		m.log.Error("Unreadable token response", "err", err)
		return false
	}

	bundle := domain.CredentialBundle{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		ExpiresIn:    body.ExpiresIn,
		TokenType:    body.TokenType,
		User:         toUser(body.User, identifier),
	}
	if err := m.creds.Store(bundle, m.expiry(body)); err != nil {
		m.log.Error("Failed to persist credentials", "err", err)
		return false
	}
	return true
}

// Refresh exchanges the stored refresh token for a new bundle. A user
// returned with the grant replaces the stored one; the prior refresh token
// and user survive when the backend omits them.
func (m *TokenManager) Refresh() bool {
	current, ok := m.creds.Bundle()
	if !ok || current.RefreshToken == "" {
		m.log.Warn("Refresh not possible", "err", errors.ErrMissingRefreshToken)
		return false
	}

	resp := m.api.Post(api.EndpointOAuth, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {current.RefreshToken},
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
		"scope":         {"*"},
	})
	if !resp.OK() {
		m.log.Warn("Refresh grant rejected", "status", resp.Status, "err", resp.Err)
		return false
	}

	var body wireTokenResponse
	if err := resp.Decode(&body); err != nil {
		m.log.Error("Unreadable token response", "err", err)
		return false
	}

	next := current
	next.AccessToken = body.AccessToken
	next.ExpiresIn = body.ExpiresIn
	if body.RefreshToken != "" {
		next.RefreshToken = body.RefreshToken
	}
	if body.User != (wireUser{}) {
		next.User = toUser(body.User, current.User.Email)
	}
	if err := m.creds.Store(next, m.expiry(body)); err != nil {
		m.log.Error("Failed to persist refreshed credentials", "err", err)
		return false
	}
	return true
}

// IsValid reports whether a bundle exists and its expiry, minus the safety
// margin, is still ahead of the clock.
func (m *TokenManager) IsValid() bool {
	if _, ok := m.creds.Bundle(); !ok {
		return false
	}
	expiresAt, ok := m.creds.ExpiresAt()
	if !ok {
		return false
	}
	return m.now().Before(expiresAt.Add(-validityMargin))
}

// CurrentUser returns the user embedded in the stored bundle.
func (m *TokenManager) CurrentUser() (domain.User, bool) {
	bundle, ok := m.creds.Bundle()
	if !ok {
		return domain.User{}, false
	}
	return bundle.User, true
}

// Logout purges all persisted credential material.
func (m *TokenManager) Logout() {
	if err := m.creds.Clear(); err != nil {
		m.log.Error("Failed to purge credentials", "err", err)
	}
}

// expiry computes the absolute expiry from expires_in, or falls back to the
// access token's exp claim when the backend omits the field.
func (m *TokenManager) expiry(body wireTokenResponse) time.Time {
	if body.ExpiresIn > 0 {
		return m.now().Add(time.Duration(body.ExpiresIn) * time.Second)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(body.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	m.log.Warn("Token response carries no usable expiry")
	return m.now()
}

func toUser(wire wireUser, identifier string) domain.User {
	user := domain.User{
		ID:        wire.ID.String(),
		Name:      wire.Name,
		AvatarURL: wire.Avatar,
		Email:     wire.Email,
	}
	// The backend may omit the user on the password grant; derive a minimal
	// identity from the login identifier.
	if user.Name == "" && user.Email == "" {
		user.Email = identifier
		user.Name = strings.SplitN(identifier, "@", 2)[0]
	}
	return user
}
