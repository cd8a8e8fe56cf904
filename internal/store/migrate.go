package store

import (
	"database/sql"
	"embed"
	"path"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

var gooseRunFunc = goose.Run // mockable

// MigrationsDir returns the embedded migrations directory for driver.
func MigrationsDir(driver string) string {
	if driver == DriverSQLite {
		return path.Join("migrations", "sqlite3")
	}
	return path.Join("migrations", "postgres")
}

func gooseDialect(driver string) string {
	if driver == DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// Migrate runs a goose command (up, down, status, version, redo, reset, up-to, down-to)
// against the embedded migrations of driver.
func Migrate(db *sql.DB, driver, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(gooseDialect(driver)); err != nil {
		return errors.Wrap(err, "goose dialect")
	}
	if err := gooseRunFunc(command, db, MigrationsDir(driver), args...); err != nil {
		return errors.Wrapf(err, "goose %s", command)
	}
	return nil
}

// MigrateUp applies every pending migration.
func MigrateUp(db *sql.DB, driver string) error {
	return Migrate(db, driver, "up")
}
