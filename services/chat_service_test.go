package services

import (
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-client/api"
	"chat-client/domain"
	"chat-client/mocks"
	"chat-client/moderation"
	"chat-client/store"
)

func newServiceStore(t *testing.T, ctrl *gomock.Controller) *store.Store {
	t.Helper()
	settings := mocks.NewMockISettingsRepository(ctrl)
	settings.EXPECT().Language().Return("zh").AnyTimes()
	settings.EXPECT().Theme().Return("light").AnyTimes()
	return store.New(settings, slog.Default())
}

func TestChatService_FetchMessages(t *testing.T) {
	t.Run("should tag each message as mine by sender id", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)
		s.SetUser(domain.User{ID: "7", Name: "Alice"})

		caller.EXPECT().Get(api.EndpointChat, nil).Return(api.Response{
			Status: 200,
			Body: []byte(`[
				{"id":1,"sender_id":7,"receiver_id":2,"content":"mine","created_at":"2024-06-01T12:00:00Z"},
				{"id":2,"sender_id":2,"receiver_id":7,"content":"theirs","created_at":"2024-06-01T12:01:00Z","read":true}
			]`),
		})

		service := NewChatService(caller, s, nil, slog.Default())
		messages, ok := service.FetchMessages()

		req.True(ok)
		req.Len(messages, 2)
		req.True(messages[0].IsMine)
		req.False(messages[1].IsMine)
		req.True(messages[1].Read)
		req.Len(s.Messages(), 2)
	})

	t.Run("should leave the store untouched on failure", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)

		caller.EXPECT().Get(api.EndpointChat, nil).Return(api.Response{
			Status: api.StatusNetworkFailure, Err: "offline",
		})

		service := NewChatService(caller, s, nil, slog.Default())
		_, ok := service.FetchMessages()

		req.False(ok)
		req.Empty(s.Messages())
	})
}

func TestChatService_SendMessage(t *testing.T) {
	t.Run("should prefer the server echo over the optimistic message", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)
		s.SetUser(domain.User{ID: "7"})

		caller.EXPECT().
			Post(api.EndpointSend, gomock.Any()).
			DoAndReturn(func(_ string, form url.Values) api.Response {
				req.Equal("2", form.Get("receiver_id"))
				req.Equal("hello", form.Get("content"))
				return api.Response{
					Status: 200,
					Body:   []byte(`{"id":99,"sender_id":7,"receiver_id":2,"content":"hello","created_at":"2024-06-01T12:00:00Z"}`),
				}
			})

		service := NewChatService(caller, s, nil, slog.Default())
		message, ok := service.SendMessage("2", "hello")

		req.True(ok)
		req.Equal("99", message.ID)
		req.True(message.IsMine)
		req.Len(s.Messages(), 1)
		req.Equal("99", s.Messages()[0].ID)
	})

	t.Run("should keep the optimistic message when the echo is empty", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)
		s.SetUser(domain.User{ID: "7"})

		caller.EXPECT().Post(api.EndpointSend, gomock.Any()).Return(api.Response{
			Status: 200, Body: []byte(`{}`),
		})

		service := NewChatService(caller, s, nil, slog.Default())
		message, ok := service.SendMessage("2", "hello")

		req.True(ok)
		req.NotEmpty(message.ID)
		req.Equal("hello", message.Content)
		req.True(message.IsMine)
	})

	t.Run("should censor outbound content before it reaches the wire", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)
		s.SetUser(domain.User{ID: "7"})

		filter, err := moderation.NewFilter([]string{"badword"}, '*')
		req.NoError(err)

		caller.EXPECT().
			Post(api.EndpointSend, gomock.Any()).
			DoAndReturn(func(_ string, form url.Values) api.Response {
				req.Equal("no *******s here", form.Get("content"))
				return api.Response{Status: 200, Body: []byte(`{}`)}
			})

		service := NewChatService(caller, s, &filter, slog.Default())
		message, ok := service.SendMessage("2", "no badwords here")

		req.True(ok)
		req.Equal("no *******s here", message.Content)
	})

	t.Run("should not touch the store when the post fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)
		s.SetUser(domain.User{ID: "7"})

		caller.EXPECT().Post(api.EndpointSend, gomock.Any()).Return(api.Response{
			Status: api.StatusRequestFailure, Err: "request failed",
		})

		service := NewChatService(caller, s, nil, slog.Default())
		_, ok := service.SendMessage("2", "hello")

		req.False(ok)
		req.Empty(s.Messages())
	})
}

func TestChatService_MarkRead(t *testing.T) {
	t.Run("should flip local state only after the backend accepts", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)
		s.AddMessage(domain.Message{ID: "42", SenderID: "2"})

		caller.EXPECT().Post(api.EndpointMarkRead, url.Values{"message_id": {"42"}}).
			Return(api.Response{Status: 200, Body: []byte(`{}`)})

		service := NewChatService(caller, s, nil, slog.Default())
		req.True(service.MarkRead("42"))
		req.True(s.IsMessageRead("42"))
	})

	t.Run("should keep local state on rejection", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)
		s.AddMessage(domain.Message{ID: "42", SenderID: "2"})

		caller.EXPECT().Post(api.EndpointMarkRead, gomock.Any()).
			Return(api.Response{Status: api.StatusRequestFailure})

		service := NewChatService(caller, s, nil, slog.Default())
		req.False(service.MarkRead("42"))
		req.False(s.IsMessageRead("42"))
	})
}

func TestContactService_List(t *testing.T) {
	t.Run("should normalize numeric ids and replace the store list", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)
		s := newServiceStore(t, ctrl)

		caller.EXPECT().Get(api.EndpointContacts, nil).Return(api.Response{
			Status: 200,
			Body:   []byte(`[{"id":2,"name":"Bob","email":"bob@example.com"},{"id":3,"name":"Carol"}]`),
		})

		service := NewContactService(caller, s, slog.Default())
		contacts, ok := service.List()

		req.True(ok)
		req.Len(contacts, 2)
		req.Equal("2", contacts[0].ID)
		req.Equal("Bob", contacts[0].Name)
		req.Len(s.Contacts(), 2)
	})
}

func TestTranslateService_Translate(t *testing.T) {
	t.Run("should attach a detected source hint", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)

		caller.EXPECT().
			Post(api.EndpointTranslate, gomock.Any()).
			DoAndReturn(func(_ string, form url.Values) api.Response {
				req.Equal("the quick brown fox jumps over the lazy dog", form.Get("text"))
				req.Equal("zh", form.Get("target"))
				// Long unambiguous English text, detection is reliable.
				req.Equal("en", form.Get("source"))
				return api.Response{Status: 200, Body: []byte(`{"translation":"敏捷的棕色狐狸跳过懒狗"}`)}
			})

		service := NewTranslateService(caller, slog.Default())
		translation, ok := service.Translate("the quick brown fox jumps over the lazy dog", "zh")

		req.True(ok)
		req.NotEmpty(translation)
	})

	t.Run("should report false on an empty translation", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		caller := mocks.NewMockCaller(ctrl)

		caller.EXPECT().Post(api.EndpointTranslate, gomock.Any()).
			Return(api.Response{Status: 200, Body: []byte(`{}`)})

		service := NewTranslateService(caller, slog.Default())
		_, ok := service.Translate("hi", "zh")
		req.False(ok)
	})
}
