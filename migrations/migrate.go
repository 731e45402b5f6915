// Package migrations embeds the schema migration files for the
// viralprompts database and applies them with goose on startup.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schemaFS embed.FS

// Apply runs every pending migration against db. Safe to call on each
// start: already-applied versions are skipped.
func Apply(db *sql.DB) error {
	goose.SetBaseFS(schemaFS)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("apply schema migrations: %w", err)
	}

	return nil
}
