package appfs

import "embed"

// FS holds the SQL migrations of the sqlite store.
//
//go:embed migrations/*.sql
var FS embed.FS
