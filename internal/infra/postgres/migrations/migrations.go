package migrations

import "github.com/uptrace/bun/migrate"

// Migrations collects the schema migrations registered by the per-migration
// files in this package. bun derives each migration's name from the file
// that registers it, so every migration lives in its own timestamped file.
var Migrations = migrate.NewMigrations()
