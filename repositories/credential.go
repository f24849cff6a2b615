//go:generate go run go.uber.org/mock/mockgen -source=credential.go -destination=../mocks/mock_credential_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"chat-client/domain"
	"chat-client/errors"
)

// Persisted keys. These are stable: an existing data directory must stay
// readable across upgrades.
const (
	keyAuthUser       = "authUser"
	keyTokenExpiresAt = "tokenExpiresAt"
)

type ICredentialRepository interface {
	Store(bundle domain.CredentialBundle, expiresAt time.Time) error
	Bundle() (domain.CredentialBundle, bool)
	ExpiresAt() (time.Time, bool)
	Clear() error
}

type CredentialRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewCredentialRepository(db *badger.DB, log *slog.Logger) *CredentialRepository {
	return &CredentialRepository{db: db, log: log}
}

// Store persists the bundle as the serialized authUser blob together with the
// computed expiry timestamp (unix milliseconds, stored as a string).
func (r *CredentialRepository) Store(bundle domain.CredentialBundle, expiresAt time.Time) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyAuthUser), data); err != nil {
			return err
		}
		millis := strconv.FormatInt(expiresAt.UnixMilli(), 10)
		return txn.Set([]byte(keyTokenExpiresAt), []byte(millis))
	})
}

// Bundle returns the stored credentials. A missing blob means "not
// authenticated". A blob that no longer parses is purged and reported absent,
// so a corrupt store never wedges the client.
func (r *CredentialRepository) Bundle() (domain.CredentialBundle, bool) {
	var raw []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyAuthUser))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return domain.CredentialBundle{}, false
	}

	var bundle domain.CredentialBundle
	if err = json.Unmarshal(raw, &bundle); err != nil {
		r.log.Error("Purging credential bundle", "err", fmt.Errorf("%w: %v", errors.ErrCorruptCredentials, err))
		_ = r.Clear()
		return domain.CredentialBundle{}, false
	}
	return bundle, true
}

// ExpiresAt reads the persisted expiry timestamp.
func (r *CredentialRepository) ExpiresAt() (time.Time, bool) {
	var raw []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTokenExpiresAt))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return time.Time{}, false
	}

	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		r.log.Error("Purging expiry timestamp", "err", fmt.Errorf("%w: %v", errors.ErrCorruptCredentials, err))
		_ = r.Clear()
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// Clear removes every piece of credential material in one transaction.
func (r *CredentialRepository) Clear() error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyAuthUser)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		if err := txn.Delete([]byte(keyTokenExpiresAt)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
}
