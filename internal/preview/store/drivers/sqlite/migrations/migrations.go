// Package migrations embeds the SQL schema migrations so the binary can
// apply them without any files on disk.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
