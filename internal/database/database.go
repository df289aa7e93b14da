package database

import (
	"database/sql"
	"fmt"
	"os"

	"payroll_backend/internal/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// InitDB opens the connection pool and bootstraps the schema. When the
// configuration carries an app namespace, all collections live in a
// dedicated Postgres schema selected through search_path on every pooled
// connection; otherwise everything goes into public. The namespace is fixed
// for the lifetime of the process.
func InitDB(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	schema := cfg.NamespaceSchema()
	if schema != "" {
		// lib/pq forwards unknown keys as run-time parameters, so every
		// pooled connection starts in the namespaced schema.
		connStr += fmt.Sprintf(" search_path=%s", schema)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if schema != "" {
		if _, err := db.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %q`, schema)); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating namespace schema %s: %w", schema, err)
		}
	}

	if err := applySchema(db, cfg.DBSchemaPath); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// applySchema reads and executes the schema file. The statements are
// idempotent, so a restart against an existing database is a no-op.
func applySchema(db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}
