package services

import (
	"encoding/json"
	"log/slog"
	"net/url"

	"chat-client/api"
	"chat-client/domain"
)

type IAccountService interface {
	Register(name, email, password string) bool
	Profile() (domain.User, bool)
	UpdateProfile(name, avatarURL string) bool
	Logout() bool
}

type AccountService struct {
	api api.Caller
	log *slog.Logger
}

func NewAccountService(caller api.Caller, log *slog.Logger) *AccountService {
	return &AccountService{api: caller, log: log}
}

func (s *AccountService) Register(name, email, password string) bool {
	return s.api.Post(api.EndpointRegister, url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	}).OK()
}

// Profile fetches the authenticated user's record.
func (s *AccountService) Profile() (domain.User, bool) {
	resp := s.api.Get(api.EndpointUser, nil)
	if !resp.OK() {
		return domain.User{}, false
	}
	var wire struct {
		ID     json.Number `json:"id"`
		Name   string      `json:"name"`
		Avatar string      `json:"avatar"`
		Email  string      `json:"email"`
	}
	if err := resp.Decode(&wire); err != nil {
		s.log.Error("Unreadable profile", "err", err)
		return domain.User{}, false
	}
	return domain.User{ID: wire.ID.String(), Name: wire.Name, AvatarURL: wire.Avatar, Email: wire.Email}, true
}

func (s *AccountService) UpdateProfile(name, avatarURL string) bool {
	return s.api.Put(api.EndpointUpdateProfile, url.Values{
		"name":   {name},
		"avatar": {avatarURL},
	}).OK()
}

// Logout tells the backend to revoke the session. Local teardown (credential
// purge, state clear, realtime disconnect) belongs to the session object.
func (s *AccountService) Logout() bool {
	return s.api.Post(api.EndpointLogout, nil).OK()
}
