// Package errors holds the sentinel values shared across packages. HTTP-layer
// failure categories (network, auth expiry, validation, generic) are not here:
// they travel inside the normalized api.Response, never as Go errors.
package errors

import "fmt"

var (
	ErrRealtimeConnection  = fmt.Errorf("realtime connection failed")
	ErrInvalidPayload      = fmt.Errorf("invalid event payload")
	ErrMissingRefreshToken = fmt.Errorf("no refresh token available")
	ErrNotConnected        = fmt.Errorf("connection not established")
	ErrCorruptCredentials  = fmt.Errorf("stored credentials are corrupt")
)
