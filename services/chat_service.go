// Package services exposes the backend API surface as typed operations.
// Each service reads the normalized HTTP response exactly once; failures
// come back as a plain false, already surfaced to the user by the HTTP layer.
package services

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-client/api"
	"chat-client/domain"
	"chat-client/moderation"
	"chat-client/store"
)

type IChatService interface {
	FetchMessages() ([]domain.Message, bool)
	SendMessage(receiverID, content string) (domain.Message, bool)
	MarkRead(messageID string) bool
	DeleteMessage(messageID string) bool
	UpdateCurrentWindow(contactID string) bool
}

type ChatService struct {
	api    api.Caller
	store  *store.Store
	filter *moderation.Filter
	log    *slog.Logger
}

// NewChatService builds the service; a nil filter disables outbound
// moderation.
func NewChatService(caller api.Caller, store *store.Store, filter *moderation.Filter, log *slog.Logger) *ChatService {
	return &ChatService{api: caller, store: store, filter: filter, log: log}
}

// wireMessage is the backend's message shape; numeric ids are normalized to
// strings at this boundary.
type wireMessage struct {
	ID         json.Number `json:"id"`
	SenderID   json.Number `json:"sender_id"`
	ReceiverID json.Number `json:"receiver_id"`
	Content    string      `json:"content"`
	CreatedAt  string      `json:"created_at"`
	Read       bool        `json:"read"`
}

func (w wireMessage) toDomain(currentUserID string) domain.Message {
	createdAt, err := time.Parse(time.RFC3339, w.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}
	return domain.Message{
		ID:         w.ID.String(),
		SenderID:   w.SenderID.String(),
		ReceiverID: w.ReceiverID.String(),
		Content:    w.Content,
		CreatedAt:  createdAt,
		Read:       w.Read,
		IsMine:     w.SenderID.String() == currentUserID,
	}
}

// FetchMessages loads the history and replaces the store's message list.
func (s *ChatService) FetchMessages() ([]domain.Message, bool) {
	resp := s.api.Get(api.EndpointChat, nil)
	if !resp.OK() {
		return nil, false
	}

	var wire []wireMessage
	if err := resp.Decode(&wire); err != nil {
		s.log.Error("Unreadable chat history", "err", err)
		return nil, false
	}

	currentID := ""
	if user, ok := s.store.CurrentUser(); ok {
		currentID = user.ID
	}
	messages := lo.Map(wire, func(w wireMessage, _ int) domain.Message {
		return w.toDomain(currentID)
	})
	s.store.SetMessages(messages)
	return messages, true
}

// SendMessage posts the message and appends it to the store. Outbound
// content runs through the moderation filter first; the message is built
// optimistically with a local id and the server echo wins when present.
func (s *ChatService) SendMessage(receiverID, content string) (domain.Message, bool) {
	if s.filter != nil {
		content = s.filter.Apply(content)
	}
	user, _ := s.store.CurrentUser()
	message := domain.Message{
		ID:         uuid.NewString(),
		SenderID:   user.ID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
		IsMine:     true,
	}

	resp := s.api.Post(api.EndpointSend, url.Values{
		"receiver_id": {receiverID},
		"content":     {content},
	})
	if !resp.OK() {
		return domain.Message{}, false
	}

	var echo wireMessage
	if err := resp.Decode(&echo); err == nil && echo.ID.String() != "" {
		message = echo.toDomain(user.ID)
		message.IsMine = true
	}
	s.store.AddMessage(message)
	return message, true
}

// MarkRead reports the read receipt to the backend and flips local state.
func (s *ChatService) MarkRead(messageID string) bool {
	resp := s.api.Post(api.EndpointMarkRead, url.Values{"message_id": {messageID}})
	if !resp.OK() {
		return false
	}
	s.store.MarkMessageRead(messageID)
	return true
}

// DeleteMessage removes the message server-side only; the in-memory list is
// append-only until the session clears.
func (s *ChatService) DeleteMessage(messageID string) bool {
	return s.api.Post(api.EndpointDeleteMessage, url.Values{"message_id": {messageID}}).OK()
}

// UpdateCurrentWindow tells the backend which conversation is on screen and
// tracks it locally.
func (s *ChatService) UpdateCurrentWindow(contactID string) bool {
	resp := s.api.Post(api.EndpointUpdateCurrWin, url.Values{"contact_id": {contactID}})
	if !resp.OK() {
		return false
	}
	s.store.SetCurrentChat(contactID)
	return true
}
