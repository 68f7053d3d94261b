// Package id generates URL-safe identifiers and secret keys.
//
// Values are base32 (RFC 4648) encoded without padding and lowercased, so they
// are safe in URLs, gRPC metadata and file paths.
package id

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a 26-character identifier derived from a random UUIDv4.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return encode(value[:]), nil
}

// NewKey returns size random bytes read from reader, encoded.
// A nil reader uses crypto/rand.
func NewKey(reader io.Reader, size int) (string, error) {
	if size <= 0 {
		return "", errors.New("key size must be greater than zero")
	}
	if reader == nil {
		reader = rand.Reader
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return encode(buf), nil
}

func encode(raw []byte) string {
	return strings.ToLower(encoding.EncodeToString(raw))
}
