// Package migrations embeds the MySQL schema migrations applied by golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
