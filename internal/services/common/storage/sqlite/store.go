// Package sqlite provides a SQLite-backed API key store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cyber-republic/go-grpc-adenine/internal/platform/storage/sqlitemigrate"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/storage"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/storage/sqlite/migrations"
)

// Store persists API keys in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the SQLite database at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutAPIKey inserts the key for its DID, replacing any previous key.
func (s *Store) PutAPIKey(ctx context.Context, key storage.APIKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	did := strings.TrimSpace(key.DID)
	value := strings.TrimSpace(key.Key)
	if did == "" {
		return fmt.Errorf("did is required")
	}
	if value == "" {
		return fmt.Errorf("api key is required")
	}
	updatedAt := key.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	createdAt := key.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = updatedAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO api_keys (did, api_key, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(did) DO UPDATE SET
		   api_key = excluded.api_key,
		   updated_at = excluded.updated_at`,
		did,
		value,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("put api key: %w", err)
	}
	return nil
}

// GetAPIKey returns the key stored for did.
func (s *Store) GetAPIKey(ctx context.Context, did string) (storage.APIKey, error) {
	if err := ctx.Err(); err != nil {
		return storage.APIKey{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.APIKey{}, fmt.Errorf("storage is not configured")
	}
	did = strings.TrimSpace(did)
	if did == "" {
		return storage.APIKey{}, fmt.Errorf("did is required")
	}

	var (
		key       storage.APIKey
		createdAt int64
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT did, api_key, created_at, updated_at
		   FROM api_keys
		  WHERE did = ?`,
		did,
	).Scan(&key.DID, &key.Key, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.APIKey{}, storage.ErrNotFound
		}
		return storage.APIKey{}, fmt.Errorf("get api key: %w", err)
	}
	key.CreatedAt = fromMillis(createdAt)
	key.UpdatedAt = fromMillis(updatedAt)
	return key, nil
}

var _ storage.APIKeyStore = (*Store)(nil)
