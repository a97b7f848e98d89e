// Package credential persists the single session credential of the device.
package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
)

var (
	// ErrUnknownBackend is returned when the configured backend name is not supported.
	ErrUnknownBackend = errors.New("unknown credential backend")
	// ErrCorruptCredential is returned when a stored value cannot be decoded.
	ErrCorruptCredential = errors.New("corrupt credential")
)

// DefaultKey is the key the credential is stored under.
const DefaultKey = "session_token"

// Store defines the interface for the persistent credential cell.
// A store holds at most one credential.
type Store interface {
	// Get returns the stored credential and true, or an empty credential and false
	// if none is stored.
	Get(ctx context.Context) (domain.Credential, bool, error)

	// Set stores the credential, replacing any previous value.
	// Setting a blank credential removes the stored value.
	Set(ctx context.Context, credential domain.Credential) error

	// Clear removes the stored credential. Clearing an empty store is not an error.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreFactory is a function that creates a new Store instance.
type StoreFactory func(ctx context.Context) (Store, error)

// Config selects and configures the credential backend.
type Config struct {
	// Backend is one of "sqlite", "redis" or "memory"
	Backend string `env:"BACKEND" default:"sqlite"`

	// Passphrase enables at-rest encryption of the credential when not empty
	Passphrase string `env:"PASSPHRASE" default:""`

	SQLite SQLiteCredentialStoreConfig `envPrefix:"SQLITE_"`
	Redis  RedisCredentialStoreConfig  `envPrefix:"REDIS_"`
}

// NewStoreFactory returns a factory for the backend named in cfg.
// The returned store is wrapped in an EncryptedCredentialStore when a passphrase is set.
func NewStoreFactory(cfg Config) (StoreFactory, error) {
	var factory StoreFactory

	switch cfg.Backend {
	case "sqlite":
		factory = SQLiteCredentialStoreFactory(cfg.SQLite)
	case "redis":
		factory = RedisCredentialStoreFactory(cfg.Redis)
	case "memory":
		factory = func(context.Context) (Store, error) {
			return NewMemoryCredentialStore(), nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if cfg.Passphrase == "" {
		return factory, nil
	}

	return func(ctx context.Context) (Store, error) {
		inner, err := factory(ctx)
		if err != nil {
			return nil, err
		}

		store, err := NewEncryptedCredentialStore(inner, cfg.Passphrase)
		if err != nil {
			_ = inner.Close()

			return nil, fmt.Errorf("new encrypted store: %w", err)
		}

		return store, nil
	}, nil
}
