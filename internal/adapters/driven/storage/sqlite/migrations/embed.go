// Package migrations embeds the SQL schema for the classification
// record database.
package migrations

import "embed"

// FS holds the migration files applied in lexical order when the
// store opens.
//
//go:embed *.sql
var FS embed.FS
