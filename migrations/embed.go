// Package migrations embeds the SQL migration files so they can be
// applied at startup and in integration tests without shipping loose
// files next to the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
