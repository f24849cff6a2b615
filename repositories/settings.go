//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=../mocks/mock_settings_repository.go -package=mocks
package repositories

import (
	"github.com/dgraph-io/badger/v4"
)

const (
	keyLanguage     = "app_language"
	keyTheme        = "app_theme"
	keySoundEnabled = "sound_enabled"

	defaultLanguage = "zh"
	defaultTheme    = "light"
)

type ISettingsRepository interface {
	Language() string
	SetLanguage(language string) error
	Theme() string
	SetTheme(theme string) error
	SoundEnabled() bool
	SetSoundEnabled(enabled bool) error
}

// SettingsRepository persists the handful of user preferences that survive
// a session: language, theme and the notification sound toggle.
type SettingsRepository struct {
	db *badger.DB
}

func NewSettingsRepository(db *badger.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Language() string {
	return r.read(keyLanguage, defaultLanguage)
}

func (r *SettingsRepository) SetLanguage(language string) error {
	return r.write(keyLanguage, language)
}

func (r *SettingsRepository) Theme() string {
	return r.read(keyTheme, defaultTheme)
}

func (r *SettingsRepository) SetTheme(theme string) error {
	return r.write(keyTheme, theme)
}

// SoundEnabled defaults to true: only an explicit "false" disables the cue.
func (r *SettingsRepository) SoundEnabled() bool {
	return r.read(keySoundEnabled, "true") != "false"
}

func (r *SettingsRepository) SetSoundEnabled(enabled bool) error {
	value := "true"
	if !enabled {
		value = "false"
	}
	return r.write(keySoundEnabled, value)
}

func (r *SettingsRepository) read(key, fallback string) string {
	var raw []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return fallback
	}
	return string(raw)
}

func (r *SettingsRepository) write(key, value string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}
