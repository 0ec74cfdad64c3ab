// Package migrations embeds the server schema as goose migrations. The SQL
// is kept portable between postgres and sqlite.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
