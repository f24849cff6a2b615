package internal

import "time"

// Config holds every recognized environment option: backend location,
// broadcaster coordinates, OAuth client material and local storage paths.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL,default=http://localhost:8000/api"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=10s"`

	PusherAppKey     string `env:"PUSHER_APP_KEY,required=true"`
	PusherAppCluster string `env:"PUSHER_APP_CLUSTER,default=ap3"`
	WebsocketHost    string `env:"WEBSOCKET_HOST,default=localhost"`
	WebsocketPort    int    `env:"WEBSOCKET_PORT,default=6001"`
	PusherForceTLS   bool   `env:"PUSHER_FORCE_TLS,default=false"`

	OAuthClientID     string `env:"OAUTH_CLIENT_ID,default=2"`
	OAuthClientSecret string `env:"OAUTH_CLIENT_SECRET,required=true"`

	// Comma-separated word list for outbound moderation; empty disables it.
	CensoredWords string `env:"CENSORED_WORDS,default="`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,required=true"`
}
