// Package event defines the typed inbound events produced by the realtime
// connection. Wire payloads are normalized into these types at the boundary;
// state mutation logic never sees a raw frame.
package event

import "chat-client/domain"

type Type string

const (
	MessageSentType     Type = "MESSAGE_SENT"
	MessageReadType     Type = "MESSAGE_READ"
	PresenceHereType    Type = "PRESENCE_HERE"
	PresenceJoiningType Type = "PRESENCE_JOINING"
	PresenceLeavingType Type = "PRESENCE_LEAVING"
	ConnectedType       Type = "CONNECTED"
	DisconnectedType    Type = "DISCONNECTED"
	ConnectionErrorType Type = "CONNECTION_ERROR"
)

// Event is one inbound occurrence, consumed by a single dispatch loop.
type Event struct {
	Type    Type
	Payload any
}

// MessageSent carries a freshly delivered private message.
type MessageSent struct {
	Message domain.Message
	Sender  domain.PresenceUser
}

// MessageRead signals that the referenced message was read by its receiver.
type MessageRead struct {
	MessageID string
}

// PresenceHere is the full member snapshot delivered on presence join.
type PresenceHere struct {
	Users []domain.PresenceUser
}

type PresenceJoining struct {
	User domain.PresenceUser
}

// PresenceLeaving carries only the identifier: the wire shape (raw id or
// full user object) is already collapsed when this event is built.
type PresenceLeaving struct {
	UserID string
}

type ConnectionError struct {
	Reason string
}
