package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-client/api"
	"chat-client/auth"
	"chat-client/domain/event"
	"chat-client/internal"
	"chat-client/moderation"
	"chat-client/notify"
	"chat-client/observability"
	"chat-client/realtime"
	"chat-client/repositories"
	"chat-client/services"
	"chat-client/session"
	"chat-client/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, drives the command loop, and centralizes
// error reporting, so every defer (database close, realtime teardown) fires
// before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Local store (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("local store opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing local store...")
		_ = db.Close()
	}()

	credentials := repositories.NewCredentialRepository(db, log)
	settings := repositories.NewSettingsRepository(db)

	// 3. HTTP layer & token lifecycle
	noticer := consoleNoticer{}
	apiClient := api.NewClient(
		config.APIBaseURL, config.RequestTimeout, credentials, noticer,
		func() { color.Warn.Println("Use /login to sign in again") },
		log,
	)
	tokens := auth.NewTokenManager(apiClient, credentials, config.OAuthClientID, config.OAuthClientSecret, log)

	// 4. State tree, cues and realtime dispatch
	sessionStore := store.New(settings, log)
	notifier := notify.NewNotifier(log, settings, os.Stdout)

	telemetry := observability.NewTelemetry()

	dispatcher := realtime.NewDispatcher(log)
	dispatcher.Register(event.MessageSentType, realtime.NewMessageSentHandler(sessionStore, notifier, log))
	dispatcher.Register(event.MessageSentType, incomingRenderer{})
	dispatcher.Register(event.MessageSentType, telemetry)
	dispatcher.Register(event.MessageReadType, realtime.NewMessageReadHandler(sessionStore))
	dispatcher.Register(event.MessageReadType, telemetry)
	presence := realtime.NewPresenceHandler(sessionStore)
	dispatcher.Register(event.PresenceHereType, presence)
	dispatcher.Register(event.PresenceJoiningType, presence)
	dispatcher.Register(event.PresenceLeavingType, presence)
	dispatcher.Register(event.PresenceHereType, telemetry)
	dispatcher.Register(event.PresenceJoiningType, telemetry)
	dispatcher.Register(event.PresenceLeavingType, telemetry)
	lifecycle := realtime.NewLifecycleHandler(log)
	dispatcher.Register(event.ConnectedType, lifecycle)
	dispatcher.Register(event.DisconnectedType, lifecycle)
	dispatcher.Register(event.ConnectionErrorType, lifecycle)
	dispatcher.Register(event.ConnectionErrorType, telemetry)

	conn := realtime.NewConnection(realtime.Config{
		AppKey:   config.PusherAppKey,
		Cluster:  config.PusherAppCluster,
		Host:     config.WebsocketHost,
		Port:     config.WebsocketPort,
		ForceTLS: config.PusherForceTLS,
	}, apiClient, tokens, dispatcher, noticer, log)

	sess := session.New(sessionStore, tokens, conn, log)
	defer sess.Close()

	// 5. Services & command loop
	var filter *moderation.Filter
	if config.CensoredWords != "" {
		built, err := moderation.NewFilter(strings.Split(config.CensoredWords, ","), '*')
		if err != nil {
			return fmt.Errorf("moderation list error: %w", err)
		}
		filter = &built
	}

	commands := &commandLoop{
		session:   sess,
		store:     sessionStore,
		telemetry: telemetry,
		chat:      services.NewChatService(apiClient, sessionStore, filter, log),
		contacts:  services.NewContactService(apiClient, sessionStore, log),
		translate: services.NewTranslateService(apiClient, log),
		account:   services.NewAccountService(apiClient, log),
		settings:  services.NewSettingsService(apiClient, sessionStore, settings, log),
		uploads:   services.NewUploadService(apiClient, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if sess.Resume() {
		if user, ok := sessionStore.CurrentUser(); ok {
			color.Success.Printf("Signed in as %s\n", user.Name)
		}
	} else {
		color.Info.Println("Use /login <email> <password> to sign in")
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping client...")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := commands.Handle(line); quit {
				return nil
			}
		}
	}
}

// consoleNoticer renders transient notices in the terminal.
type consoleNoticer struct{}

func (consoleNoticer) Notice(text string) {
	color.Warn.Println(text)
}
