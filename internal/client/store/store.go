// Package store is the client's durable session state: a small key-value
// table in a local sqlite database standing in for the browser's local
// storage. Exactly five session keys exist; clearing them is a single
// atomic operation because a partial clear is a defect.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"shopgate/internal/client/migrations"
	"shopgate/internal/client/models"
	"shopgate/internal/common"
	"shopgate/internal/cryptox"
	"shopgate/internal/dbx"

	"github.com/pressly/goose/v3"
)

// The five session keys. SessionKeys is the authoritative list used by
// Clear; adding a key here is what makes it part of the session.
const (
	KeyToken           = "token"
	KeyAccount         = "account"
	KeyOnboardingDraft = "onboarding_draft"
	KeyCachedEmail     = "cached_email"
	KeyCachedPassword  = "cached_password"
)

var SessionKeys = []string{KeyToken, KeyAccount, KeyOnboardingDraft, KeyCachedEmail, KeyCachedPassword}

// sealKeyRow holds the per-install key the credential cache is sealed
// with. It is not session state and survives Clear.
const sealKeyRow = "seal_key"

// Store is the session's durable store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Clear removes all five session keys in one transaction.
	Clear(ctx context.Context) error

	// SetSealed / GetSealed store a value encrypted at rest. Used for the
	// credential cache only.
	SetSealed(ctx context.Context, key string, value []byte) error
	GetSealed(ctx context.Context, key string) ([]byte, error)

	SaveAccount(ctx context.Context, a *models.Account) error
	LoadAccount(ctx context.Context) (*models.Account, error)
}

// SQLiteStore implements Store over a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the session database at dsn and runs migrations.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// New wraps an already-open database. Used by tests.
func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

// Clear wipes all five session keys inside a single transaction, so the
// store never ends up with a token but no account snapshot or vice versa.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range SessionKeys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key); err != nil {
				return fmt.Errorf("failed to clear session[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) SetSealed(ctx context.Context, key string, value []byte) error {
	sealKey, err := s.sealKey(ctx)
	if err != nil {
		return err
	}
	sealed, err := cryptox.Seal(value, sealKey)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, sealed)
}

func (s *SQLiteStore) GetSealed(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	sealKey, err := s.sealKey(ctx)
	if err != nil {
		return nil, err
	}
	return cryptox.Open(sealed, sealKey)
}

// sealKey returns the per-install sealing key, generating it on first use.
func (s *SQLiteStore) sealKey(ctx context.Context) ([]byte, error) {
	key, err := s.Get(ctx, sealKeyRow)
	if err != nil {
		return nil, err
	}
	if key != nil {
		return key, nil
	}
	key = common.GenerateRandByteArray(32)
	if err := s.Set(ctx, sealKeyRow, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *SQLiteStore) SaveAccount(ctx context.Context, a *models.Account) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.Set(ctx, KeyAccount, raw)
}

func (s *SQLiteStore) LoadAccount(ctx context.Context) (*models.Account, error) {
	raw, err := s.Get(ctx, KeyAccount)
	if err != nil || raw == nil {
		return nil, err
	}
	var a models.Account
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
