package migrator

import (
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations runs all pending goose migrations from the embedded FS against
// dbURL. versionTable names the goose bookkeeping table; both bounded contexts
// share one database, so each context keeps its own version table.
func RunMigrations(dbURL string, files fs.FS, versionTable string) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	goose.SetBaseFS(files)
	goose.SetTableName(versionTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	return nil
}
