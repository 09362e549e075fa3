package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"serverless-crud-api/internal/dataclient"
)

// OpenSQL opens a database/sql handle for tooling that needs one, such as
// the migration runner. Postgres goes through pgx's stdlib driver.
func OpenSQL(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case dataclient.DriverSQLite, "sqlite":
		if path := strings.SplitN(dsn, "?", 2)[0]; path != "" && path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := sql.Open(dataclient.DriverSQLite, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// SQLite works best with single connection
		db.SetMaxOpenConns(1)
		return db, nil
	case dataclient.DriverPostgres, "pgx":
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
