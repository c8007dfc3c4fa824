package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// versionTable is goose's default version table.
const versionTable = "goose_db_version"

// SchemaStatus describes the applied schema version.
type SchemaStatus struct {
	Version        int64
	PendingChanges bool
}

func newProvider(db *sql.DB) (*goose.Provider, error) {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration. It is safe to call on an
// up-to-date database.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Status reports the current schema version and whether migrations are pending.
// A database that was never migrated reports version 0 with pending changes.
func Status(ctx context.Context, db *sql.DB) (SchemaStatus, error) {
	var tables int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, versionTable,
	).Scan(&tables)
	if err != nil {
		return SchemaStatus{}, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if tables == 0 {
		return SchemaStatus{Version: 0, PendingChanges: true}, nil
	}

	provider, err := newProvider(db)
	if err != nil {
		return SchemaStatus{}, err
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return SchemaStatus{}, fmt.Errorf("failed to get schema version: %w", err)
	}

	pending, err := provider.HasPending(ctx)
	if err != nil {
		return SchemaStatus{}, fmt.Errorf("failed to check pending migrations: %w", err)
	}

	return SchemaStatus{Version: version, PendingChanges: pending}, nil
}
