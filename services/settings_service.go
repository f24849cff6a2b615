package services

import (
	"log/slog"
	"net/url"
	"strconv"

	"chat-client/api"
	"chat-client/repositories"
	"chat-client/store"
)

type Settings struct {
	Language     string `json:"language"`
	Theme        string `json:"theme"`
	SoundEnabled bool   `json:"sound_enabled"`
}

type ISettingsService interface {
	Get() (Settings, bool)
	Update(settings Settings) bool
}

// SettingsService syncs preferences with the backend and mirrors them into
// local state: language and theme through the store (which persists them),
// the sound toggle straight to the settings repository.
type SettingsService struct {
	api      api.Caller
	store    *store.Store
	settings repositories.ISettingsRepository
	log      *slog.Logger
}

func NewSettingsService(
	caller api.Caller,
	store *store.Store,
	settings repositories.ISettingsRepository,
	log *slog.Logger,
) *SettingsService {
	return &SettingsService{api: caller, store: store, settings: settings, log: log}
}

func (s *SettingsService) Get() (Settings, bool) {
	resp := s.api.Get(api.EndpointSettings, nil)
	if !resp.OK() {
		return Settings{}, false
	}
	var settings Settings
	if err := resp.Decode(&settings); err != nil {
		s.log.Error("Unreadable settings", "err", err)
		return Settings{}, false
	}
	return settings, true
}

func (s *SettingsService) Update(settings Settings) bool {
	resp := s.api.Post(api.EndpointUpdateSettings, url.Values{
		"language":      {settings.Language},
		"theme":         {settings.Theme},
		"sound_enabled": {strconv.FormatBool(settings.SoundEnabled)},
	})
	if !resp.OK() {
		return false
	}

	s.store.SetLanguage(settings.Language)
	s.store.SetTheme(settings.Theme)
	if err := s.settings.SetSoundEnabled(settings.SoundEnabled); err != nil {
		s.log.Error("Failed to persist sound setting", "err", err)
	}
	return true
}
