// Package migrations bundles the versioned schema files for every storage backend.
package migrations

import "embed"

// FS holds one subdirectory per backend ("sqlite", "postgres") of NNN_name.sql files.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
