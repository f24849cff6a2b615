package domain

// ConnectionState tracks the realtime connection lifecycle.
// Channel subscriptions are only active while Connected.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
	Errored
)

func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Errored:
		return "errored"
	}
	return "unknown"
}
