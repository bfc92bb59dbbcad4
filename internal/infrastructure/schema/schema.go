// Package schema applies the schema migrations shipped under migrations/.
package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
)

// Migrate runs every pending migration found in <root>/<dialect> against db.
// dialect is "postgres" or "sqlite".
func Migrate(db *sqlx.DB, dialect, root string) error {
	var (
		driver     database.Driver
		driverName string
		err        error
	)

	switch dialect {
	case "sqlite":
		driverName = "sqlite3"
		driver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	case "postgres":
		driverName = "postgres"
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported migration dialect: %s", dialect)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	dir, err := filepath.Abs(filepath.Join(root, dialect))
	if err != nil {
		return fmt.Errorf("failed to resolve migrations directory: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(dir), driverName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Migrations completed successfully", "dialect", dialect, "dir", dir)
	return nil
}
