package migrations

import "embed"

// FS contains embedded SQLite migrations for API key storage.
//
//go:embed *.sql
var FS embed.FS
