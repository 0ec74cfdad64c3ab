// Package migrations embeds the client's sqlite schema as goose migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
