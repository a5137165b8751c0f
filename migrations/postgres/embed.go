// Package migrations embeds the SQL migration files for postgres.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
