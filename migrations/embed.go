// Package migrations embeds the SQL schema for the preference store so the
// binaries and tests can apply it without touching the filesystem.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
