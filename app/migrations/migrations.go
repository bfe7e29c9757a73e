// Package migrations embeds the goose SQL migrations that are applied on
// startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
