// Package storage defines persistence contracts for the common service.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no API key exists for the requested DID.
var ErrNotFound = errors.New("record not found")

// APIKey binds one API key to the DID that requested it.
type APIKey struct {
	DID       string
	Key       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// APIKeyStore persists API keys by DID. A DID holds at most one key.
type APIKeyStore interface {
	// PutAPIKey inserts the key or replaces the DID's existing key. CreatedAt
	// of an existing record is preserved.
	PutAPIKey(ctx context.Context, key APIKey) error
	// GetAPIKey returns the DID's key or ErrNotFound.
	GetAPIKey(ctx context.Context, did string) (APIKey, error)
}
