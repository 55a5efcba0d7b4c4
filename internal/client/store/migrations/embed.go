// Package migrations embeds the durable store's goose migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
