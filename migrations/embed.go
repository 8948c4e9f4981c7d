// Package migrations embeds SQL migration files into the binary.
//
// Importing this package (usually with a blank import) registers the
// embedded files with the database package.
package migrations

import (
	"embed"

	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
