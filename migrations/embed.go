// Package migrations embeds the SQL migration files so the goose programmatic
// API can apply them in repo integration tests and at server bootstrap without
// a filesystem path at runtime.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
