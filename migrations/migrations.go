package migrations

import "embed"

// FS holds the SQL schema migrations.
//
//go:embed *.sql
var FS embed.FS
