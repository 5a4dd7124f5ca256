package migrations

import "embed"

// Files holds the forward-only schema migrations applied when the database opens.
//
//go:embed *.sql
var Files embed.FS
