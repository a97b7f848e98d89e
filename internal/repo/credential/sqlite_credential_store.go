package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
)

// SQLiteCredentialStoreConfig holds configuration for the SQLite credential store.
type SQLiteCredentialStoreConfig struct {
	// DatabasePath is the filesystem path to the SQLite preferences database
	DatabasePath string `env:"DATABASE_PATH" default:"var/storage/preferences.db"`

	// Key is the preference key the credential is stored under
	Key string `env:"KEY" default:"session_token"`
}

// SQLiteCredentialStore implements Store as a single row of a key-value preferences table.
type SQLiteCredentialStore struct {
	db        *sql.DB
	key       string
	log       logging.Logger
	writeLock *sync.Mutex // go-sqlite does not support concurrent writes
}

var _ Store = (*SQLiteCredentialStore)(nil)

// SQLiteCredentialStoreFactory creates a factory function that returns a new SQLiteCredentialStore.
func SQLiteCredentialStoreFactory(cfg SQLiteCredentialStoreConfig) StoreFactory {
	return func(ctx context.Context) (Store, error) {
		return NewSQLiteCredentialStore(ctx, cfg)
	}
}

// NewSQLiteCredentialStore opens the preferences database and creates the schema if needed.
func NewSQLiteCredentialStore(ctx context.Context, cfg SQLiteCredentialStoreConfig) (*SQLiteCredentialStore, error) {
	log := logging.GetLogger("repo.credential.sqlite_credential_store").With(
		logging.Group("db", "path", cfg.DatabasePath),
	)

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := initializeDB(ctx, db); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("initialize db: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteCredentialStore{
		db:        db,
		key:       key,
		log:       log,
		writeLock: new(sync.Mutex),
	}, nil
}

func initializeDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS preferences (
			key        TEXT    PRIMARY KEY,
			value      TEXT    NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Get implements Store.Get using SQLite.
func (s *SQLiteCredentialStore) Get(ctx context.Context) (domain.Credential, bool, error) {
	var value string

	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM preferences WHERE key = ?",
		s.key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("query credential: %w", err)
	}

	credential := domain.Credential(value)

	return credential, !credential.IsBlank(), nil
}

// Set implements Store.Set using SQLite.
func (s *SQLiteCredentialStore) Set(ctx context.Context, credential domain.Credential) (err error) {
	if credential.IsBlank() {
		return s.Clear(ctx)
	}

	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	defer func() {
		if err != nil {
			s.log.ErrorContext(ctx, "credential store failed", "error", err)
		} else {
			s.log.DebugContext(ctx, "credential stored")
		}
	}()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`,
		s.key,
		string(credential),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}

	return nil
}

// Clear implements Store.Clear using SQLite.
func (s *SQLiteCredentialStore) Clear(ctx context.Context) (err error) {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	defer func() {
		if err != nil {
			s.log.ErrorContext(ctx, "credential clear failed", "error", err)
		} else {
			s.log.DebugContext(ctx, "credential cleared")
		}
	}()

	if _, err = s.db.ExecContext(ctx, "DELETE FROM preferences WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}

	return nil
}

// Close implements Store.Close by closing the database connection.
func (s *SQLiteCredentialStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	return nil
}
