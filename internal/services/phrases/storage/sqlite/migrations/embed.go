package migrations

import "embed"

// FS contains embedded SQLite migrations for phrase storage.
//
//go:embed *.sql
var FS embed.FS
