package database

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Table names owned by the schema
const (
	UsersTable    = "users"
	ProductsTable = "products"
)

// tableMigrations maps each table to the migration that creates it
var tableMigrations = map[string]string{
	UsersTable:    "migrations/000001_create_users.up.sql",
	ProductsTable: "migrations/000002_create_products.up.sql",
}

// Migrations returns the embedded migration files rooted at the migrations
// directory
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// TableStatements returns the DDL statements that create a table and its
// indexes, one statement per element
func TableStatements(table string) ([]string, error) {
	path, ok := tableMigrations[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	content, err := migrationFiles.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return splitStatements(string(content)), nil
}

func splitStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
