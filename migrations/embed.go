// Package migrations embeds the goose SQL migrations so the binary can
// migrate a database without the source tree.
package migrations

import "embed"

// FS holds the *.sql migration files at its root.
//
//go:embed *.sql
var FS embed.FS
