package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-client/errors"
)

func TestFrameData(t *testing.T) {
	t.Run("should unwrap double-encoded data", func(t *testing.T) {
		req := require.New(t)

		raw := json.RawMessage(`"{\"socket_id\":\"123.456\"}"`)
		req.JSONEq(`{"socket_id":"123.456"}`, string(frameData(raw)))
	})

	t.Run("should pass plain objects through", func(t *testing.T) {
		req := require.New(t)

		raw := json.RawMessage(`{"socket_id":"123.456"}`)
		req.JSONEq(`{"socket_id":"123.456"}`, string(frameData(raw)))
	})

	t.Run("should return nil on empty data", func(t *testing.T) {
		require.Nil(t, frameData(nil))
	})
}

func TestShortEventName(t *testing.T) {
	req := require.New(t)

	req.Equal("MessageSent", shortEventName(`App\Events\MessageSent`))
	req.Equal("MessageSent", shortEventName("MessageSent"))
	req.Equal("pusher:ping", shortEventName("pusher:ping"))
}

func TestDecodeEstablished(t *testing.T) {
	t.Run("should read the socket id", func(t *testing.T) {
		req := require.New(t)

		socketID, err := decodeEstablished(json.RawMessage(`"{\"socket_id\":\"171.980\"}"`))
		req.NoError(err)
		req.Equal("171.980", socketID)
	})

	t.Run("should reject a handshake without socket id", func(t *testing.T) {
		_, err := decodeEstablished(json.RawMessage(`"{}"`))
		require.ErrorIs(t, err, errors.ErrInvalidPayload)
	})
}

func TestDecodeMessageSent(t *testing.T) {
	t.Run("should normalize numeric ids and parse the timestamp", func(t *testing.T) {
		req := require.New(t)

		payload, err := decodeMessageSent(json.RawMessage(`{
			"message":{
				"id":42,"content":"hi there","sender_id":7,"receiver_id":1,
				"created_at":"2024-06-01T12:00:00Z"
			},
			"sender":{"id":7,"name":"Alice","avatar":"a.png"}
		}`))
		req.NoError(err)
		req.Equal("42", payload.Message.ID)
		req.Equal("7", payload.Message.SenderID)
		req.Equal("1", payload.Message.ReceiverID)
		req.Equal("hi there", payload.Message.Content)
		req.False(payload.Message.IsMine)
		req.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), payload.Message.CreatedAt)
		req.Equal("Alice", payload.Sender.Name)
	})

	t.Run("should substitute now for an unreadable timestamp", func(t *testing.T) {
		req := require.New(t)

		payload, err := decodeMessageSent(json.RawMessage(`{
			"message":{"id":1,"sender_id":7,"created_at":"yesterday"}
		}`))
		req.NoError(err)
		req.WithinDuration(time.Now().UTC(), payload.Message.CreatedAt, time.Minute)
	})

	t.Run("should reject a broadcast without a message id", func(t *testing.T) {
		_, err := decodeMessageSent(json.RawMessage(`{"message":{"content":"x"}}`))
		require.ErrorIs(t, err, errors.ErrInvalidPayload)
	})
}

func TestDecodeMessageRead(t *testing.T) {
	t.Run("should read the message id", func(t *testing.T) {
		req := require.New(t)

		payload, err := decodeMessageRead(json.RawMessage(`{"messageId":42}`))
		req.NoError(err)
		req.Equal("42", payload.MessageID)
	})

	t.Run("should reject a receipt without a message id", func(t *testing.T) {
		_, err := decodeMessageRead(json.RawMessage(`{}`))
		require.ErrorIs(t, err, errors.ErrInvalidPayload)
	})
}

func TestDecodePresenceSnapshot(t *testing.T) {
	t.Run("should join ids with the member hash in order", func(t *testing.T) {
		req := require.New(t)

		raw := `"{\"presence\":{\"ids\":[2,1],\"hash\":{\"1\":{\"name\":\"Alice\"},\"2\":{\"name\":\"Bob\"}}}}"`
		payload, err := decodePresenceSnapshot(json.RawMessage(raw))
		req.NoError(err)
		req.Len(payload.Users, 2)
		req.Equal("2", payload.Users[0].ID)
		req.Equal("Bob", payload.Users[0].Name)
		req.Equal("1", payload.Users[1].ID)
		req.Equal("Alice", payload.Users[1].Name)
	})

	t.Run("should keep an id with no hash entry", func(t *testing.T) {
		req := require.New(t)

		payload, err := decodePresenceSnapshot(json.RawMessage(`{"presence":{"ids":[9],"hash":{}}}`))
		req.NoError(err)
		req.Len(payload.Users, 1)
		req.Equal("9", payload.Users[0].ID)
	})
}

func TestDecodeMemberAdded(t *testing.T) {
	req := require.New(t)

	payload, err := decodeMemberAdded(json.RawMessage(`{
		"user_id":3,"user_info":{"name":"Carol","avatar":"c.png"}
	}`))
	req.NoError(err)
	req.Equal("3", payload.User.ID)
	req.Equal("Carol", payload.User.Name)
}

func TestDecodeMemberRemoved(t *testing.T) {
	t.Run("should accept a bare identifier", func(t *testing.T) {
		req := require.New(t)

		payload, err := decodeMemberRemoved(json.RawMessage(`3`))
		req.NoError(err)
		req.Equal("3", payload.UserID)
	})

	t.Run("should accept a full user object", func(t *testing.T) {
		req := require.New(t)

		payload, err := decodeMemberRemoved(json.RawMessage(`{"user_id":3,"user_info":{"name":"Carol"}}`))
		req.NoError(err)
		req.Equal("3", payload.UserID)

		payload, err = decodeMemberRemoved(json.RawMessage(`{"id":4}`))
		req.NoError(err)
		req.Equal("4", payload.UserID)
	})

	t.Run("should reject a frame carrying no identifier", func(t *testing.T) {
		_, err := decodeMemberRemoved(json.RawMessage(`{}`))
		require.ErrorIs(t, err, errors.ErrInvalidPayload)
	})
}
