// Package migrations holds the Postgres schema as ordered SQL files and applies the pending ones.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

// Names returns the embedded migration file names in apply order.
func Names() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Up applies every migration not yet recorded in schema_migrations, each in its own transaction.
// It returns the names it applied.
func Up(ctx context.Context, db *sql.DB, logger *slog.Logger) ([]string, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`); err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range names {
		var done bool
		if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, name).Scan(&done); err != nil {
			return applied, err
		}
		if done {
			continue
		}
		body, err := files.ReadFile(name)
		if err != nil {
			return applied, err
		}
		if err := apply(ctx, db, name, string(body)); err != nil {
			return applied, fmt.Errorf("apply %s: %w", name, err)
		}
		logger.Info("migration applied", "version", name)
		applied = append(applied, name)
	}
	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, name, body string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, body); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
