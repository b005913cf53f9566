package migrations

import "embed"

// FS holds the embedded migration files, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
