package domain

import "time"

// Message represents one private chat message.
// Created either optimistically (outgoing) or from an inbound event (incoming).
// The ID never changes after insertion; only Read may flip, and only false to true.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	Read       bool      `json:"read"`
	IsMine     bool      `json:"isMine"`
}

// Involves reports whether the message belongs to a conversation with the given contact.
func (m Message) Involves(contactID string) bool {
	return m.SenderID == contactID || m.ReceiverID == contactID
}
