// Package domain contains core concepts of the chat client.
// This file defines User and presence entities.
// No runtime, network, or UI logic should be added here.
package domain

// User is the authenticated account or a contact.
// Immutable once fetched for a session, replaced wholesale on login/logout.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
	Email     string `json:"email"`
}

// PresenceUser is a member of the presence channel.
// The online set is keyed by ID, never by position.
type PresenceUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
