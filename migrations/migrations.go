package migrations

import "embed"

// Postgres holds the schema migrations so binaries run them without the source tree.
//
//go:embed postgres/*.sql
var Postgres embed.FS
