package services

import (
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/samber/lo"

	"chat-client/api"
	"chat-client/domain"
	"chat-client/store"
)

type IContactService interface {
	List() ([]domain.User, bool)
	Add(contactID string) bool
	Remove(contactID string) bool
	Block(contactID string) bool
	Unblock(contactID string) bool
}

type ContactService struct {
	api   api.Caller
	store *store.Store
	log   *slog.Logger
}

func NewContactService(caller api.Caller, store *store.Store, log *slog.Logger) *ContactService {
	return &ContactService{api: caller, store: store, log: log}
}

type wireContact struct {
	ID     json.Number `json:"id"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar"`
	Email  string      `json:"email"`
}

// List fetches the contact list and replaces it in the store.
func (s *ContactService) List() ([]domain.User, bool) {
	resp := s.api.Get(api.EndpointContacts, nil)
	if !resp.OK() {
		return nil, false
	}

	var wire []wireContact
	if err := resp.Decode(&wire); err != nil {
		s.log.Error("Unreadable contact list", "err", err)
		return nil, false
	}

	contacts := lo.Map(wire, func(w wireContact, _ int) domain.User {
		return domain.User{ID: w.ID.String(), Name: w.Name, AvatarURL: w.Avatar, Email: w.Email}
	})
	s.store.SetContacts(contacts)
	return contacts, true
}

func (s *ContactService) Add(contactID string) bool {
	return s.mutate(api.EndpointAddContact, contactID)
}

func (s *ContactService) Remove(contactID string) bool {
	return s.mutate(api.EndpointRemoveContact, contactID)
}

func (s *ContactService) Block(contactID string) bool {
	return s.mutate(api.EndpointBlockContact, contactID)
}

func (s *ContactService) Unblock(contactID string) bool {
	return s.mutate(api.EndpointUnblockContact, contactID)
}

func (s *ContactService) mutate(endpoint, contactID string) bool {
	return s.api.Post(endpoint, url.Values{"contact_id": {contactID}}).OK()
}
