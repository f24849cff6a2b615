// Package store is the single source of truth for session state: user,
// messages, contacts, presence and read-state. Every mutation is one atomic
// step under the store's lock, so interleaved HTTP and realtime callbacks
// can never observe a partial update.
package store

import (
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"chat-client/domain"
	"chat-client/repositories"
)

type Store struct {
	mu sync.Mutex

	user        *domain.User
	messages    []domain.Message
	contacts    []domain.User
	currentChat string
	online      map[string]domain.PresenceUser
	unread      int
	readIDs     map[string]struct{}

	language string
	theme    string

	settings repositories.ISettingsRepository
	log      *slog.Logger
}

func New(settings repositories.ISettingsRepository, log *slog.Logger) *Store {
	return &Store{
		online:   make(map[string]domain.PresenceUser),
		readIDs:  make(map[string]struct{}),
		language: settings.Language(),
		theme:    settings.Theme(),
		settings: settings,
		log:      log,
	}
}

func (s *Store) SetUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// AddMessage appends in arrival order. Messages are never reordered by
// server timestamp and never removed outside ClearUserData.
func (s *Store) AddMessage(message domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
}

func (s *Store) SetMessages(messages []domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = messages
}

func (s *Store) SetContacts(contacts []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = contacts
}

func (s *Store) SetCurrentChat(contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentChat = contactID
}

func (s *Store) IncrementUnread() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unread++
}

// MarkMessageRead flips the message's read flag and decrements the unread
// counter, at most once per id. A second call for the same id is a no-op.
func (s *Store) MarkMessageRead(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.readIDs[messageID]; seen {
		return
	}
	s.readIDs[messageID] = struct{}{}

	for i := range s.messages {
		if s.messages[i].ID == messageID {
			s.messages[i].Read = true
			break
		}
	}
	if s.unread > 0 {
		s.unread--
	}
}

// SetOnlineUsers replaces the online set wholesale (presence "here").
func (s *Store) SetOnlineUsers(users []domain.PresenceUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = make(map[string]domain.PresenceUser, len(users))
	for _, user := range users {
		s.online[user.ID] = user
	}
}

func (s *Store) AddOnlineUser(user domain.PresenceUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online[user.ID] = user
}

func (s *Store) RemoveOnlineUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.online, userID)
}

// SetLanguage persists the choice as a side effect; language and theme are
// the only mutations allowed to reach outside the store.
func (s *Store) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
	if err := s.settings.SetLanguage(language); err != nil {
		s.log.Error("Failed to persist language", "err", err)
	}
}

func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	if err := s.settings.SetTheme(theme); err != nil {
		s.log.Error("Failed to persist theme", "err", err)
	}
}

// ClearUserData resets user, messages, contacts, current chat, presence,
// unread count and read-state in one transition. Used on logout.
func (s *Store) ClearUserData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.messages = nil
	s.contacts = nil
	s.currentChat = ""
	s.online = make(map[string]domain.PresenceUser)
	s.unread = 0
	s.readIDs = make(map[string]struct{})
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Store) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.messages...)
}

// MessagesForContact filters the sequence to the conversation with one
// contact, preserving arrival order.
func (s *Store) MessagesForContact(contactID string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Filter(s.messages, func(m domain.Message, _ int) bool {
		return m.Involves(contactID)
	})
}

func (s *Store) IsMessageRead(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, seen := s.readIDs[messageID]
	return seen
}

func (s *Store) Contacts() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User(nil), s.contacts...)
}

func (s *Store) CurrentChat() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentChat
}

func (s *Store) OnlineUsers() []domain.PresenceUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Values(s.online)
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}
