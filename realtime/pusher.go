package realtime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chat-client/domain"
	"chat-client/domain/event"
	"chat-client/errors"
)

// Pusher-protocol frame names.
const (
	pusherConnectionEstablished = "pusher:connection_established"
	pusherError                 = "pusher:error"
	pusherPing                  = "pusher:ping"
	pusherPong                  = "pusher:pong"
	pusherSubscribe             = "pusher:subscribe"
	pusherSubscriptionSucceeded = "pusher_internal:subscription_succeeded"
	pusherMemberAdded           = "pusher_internal:member_added"
	pusherMemberRemoved         = "pusher_internal:member_removed"
)

// Application event names broadcast on the private channel. The backend may
// prefix them with its namespace; matching is done on the trailing segment.
const (
	eventMessageSent = "MessageSent"
	eventMessageRead = "MessageRead"
)

// frame is one websocket message in either direction. Data is double-encoded
// on the wire for most frames (a JSON string containing JSON).
type frame struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// frameData unwraps the double encoding: if the raw data is a JSON string,
// the contained document is returned, otherwise the raw bytes are used as-is.
func frameData(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		return []byte(inner)
	}
	return raw
}

// shortEventName strips a namespace prefix like App\Events\MessageSent.
func shortEventName(name string) string {
	if i := strings.LastIndex(name, `\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

type wirePresenceUser struct {
	ID     json.Number `json:"id"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar"`
}

func (w wirePresenceUser) toDomain() domain.PresenceUser {
	return domain.PresenceUser{ID: w.ID.String(), Name: w.Name, Avatar: w.Avatar}
}

// decodeEstablished reads the socket id handed out on connect.
func decodeEstablished(raw json.RawMessage) (string, error) {
	var body struct {
		SocketID string `json:"socket_id"`
	}
	if err := json.Unmarshal(frameData(raw), &body); err != nil {
		return "", fmt.Errorf("%w: connection_established: %v", errors.ErrInvalidPayload, err)
	}
	if body.SocketID == "" {
		return "", fmt.Errorf("%w: connection_established without socket_id", errors.ErrInvalidPayload)
	}
	return body.SocketID, nil
}

// decodeMessageSent turns the MessageSent broadcast into a typed event.
// Incoming messages are never ours and start unread.
func decodeMessageSent(raw json.RawMessage) (event.MessageSent, error) {
	var body struct {
		Message struct {
			ID         json.Number `json:"id"`
			Content    string      `json:"content"`
			SenderID   json.Number `json:"sender_id"`
			ReceiverID json.Number `json:"receiver_id"`
			CreatedAt  string      `json:"created_at"`
		} `json:"message"`
		Sender wirePresenceUser `json:"sender"`
	}
	if err := json.Unmarshal(frameData(raw), &body); err != nil {
		return event.MessageSent{}, fmt.Errorf("%w: MessageSent: %v", errors.ErrInvalidPayload, err)
	}
	if body.Message.ID.String() == "" {
		return event.MessageSent{}, fmt.Errorf("%w: MessageSent without message id", errors.ErrInvalidPayload)
	}

	createdAt, err := time.Parse(time.RFC3339, body.Message.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}
	return event.MessageSent{
		Message: domain.Message{
			ID:         body.Message.ID.String(),
			SenderID:   body.Message.SenderID.String(),
			ReceiverID: body.Message.ReceiverID.String(),
			Content:    body.Message.Content,
			CreatedAt:  createdAt,
			IsMine:     false,
		},
		Sender: body.Sender.toDomain(),
	}, nil
}

func decodeMessageRead(raw json.RawMessage) (event.MessageRead, error) {
	var body struct {
		MessageID json.Number `json:"messageId"`
	}
	if err := json.Unmarshal(frameData(raw), &body); err != nil {
		return event.MessageRead{}, fmt.Errorf("%w: MessageRead: %v", errors.ErrInvalidPayload, err)
	}
	if body.MessageID.String() == "" {
		return event.MessageRead{}, fmt.Errorf("%w: MessageRead without messageId", errors.ErrInvalidPayload)
	}
	return event.MessageRead{MessageID: body.MessageID.String()}, nil
}

// decodePresenceSnapshot reads the subscription_succeeded member list.
func decodePresenceSnapshot(raw json.RawMessage) (event.PresenceHere, error) {
	var body struct {
		Presence struct {
			IDs  []json.Number               `json:"ids"`
			Hash map[string]wirePresenceUser `json:"hash"`
		} `json:"presence"`
	}
	if err := json.Unmarshal(frameData(raw), &body); err != nil {
		return event.PresenceHere{}, fmt.Errorf("%w: subscription_succeeded: %v", errors.ErrInvalidPayload, err)
	}

	users := make([]domain.PresenceUser, 0, len(body.Presence.IDs))
	for _, id := range body.Presence.IDs {
		user := body.Presence.Hash[id.String()].toDomain()
		user.ID = id.String()
		users = append(users, user)
	}
	return event.PresenceHere{Users: users}, nil
}

func decodeMemberAdded(raw json.RawMessage) (event.PresenceJoining, error) {
	var body struct {
		UserID   json.Number      `json:"user_id"`
		UserInfo wirePresenceUser `json:"user_info"`
	}
	if err := json.Unmarshal(frameData(raw), &body); err != nil {
		return event.PresenceJoining{}, fmt.Errorf("%w: member_added: %v", errors.ErrInvalidPayload, err)
	}
	user := body.UserInfo.toDomain()
	user.ID = body.UserID.String()
	return event.PresenceJoining{User: user}, nil
}

// decodeMemberRemoved accepts both wire shapes for a leaving member: the
// bare identifier or a full user object. The identifier alone crosses the
// boundary; state mutation logic never branches on the shape.
func decodeMemberRemoved(raw json.RawMessage) (event.PresenceLeaving, error) {
	data := frameData(raw)

	var bare json.Number
	if err := json.Unmarshal(data, &bare); err == nil && bare.String() != "" {
		return event.PresenceLeaving{UserID: bare.String()}, nil
	}

	var body struct {
		UserID json.Number `json:"user_id"`
		ID     json.Number `json:"id"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return event.PresenceLeaving{}, fmt.Errorf("%w: member_removed: %v", errors.ErrInvalidPayload, err)
	}
	id := body.UserID.String()
	if id == "" {
		id = body.ID.String()
	}
	if id == "" {
		return event.PresenceLeaving{}, fmt.Errorf("%w: member_removed without user id", errors.ErrInvalidPayload)
	}
	return event.PresenceLeaving{UserID: id}, nil
}
