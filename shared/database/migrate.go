package database

import (
	"context"
	"fmt"
	"log/slog"
)

// Migration is a named schema change. Statements are selected per driver.
type Migration struct {
	Name     string
	Postgres string
	SQLite   string
}

func (m Migration) statement(driver string) string {
	if driver == DriverSQLite {
		return m.SQLite
	}
	return m.Postgres
}

// Migrate applies every migration not yet recorded in schema_migrations,
// in order
func (c *Client) Migrate(ctx context.Context, migrations []Migration) error {
	c.logger.Info("Starting database migrations",
		slog.Int("count", len(migrations)),
	)

	_, err := c.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied int
		query := c.db.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`)
		if err := c.db.GetContext(ctx, &applied, query, m.Name); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.Name, err)
		}
		if applied > 0 {
			continue
		}

		tx, err := c.BeginTx(ctx)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, m.statement(c.config.Driver)); err != nil {
			_ = tx.Rollback()
			c.logger.Error("Migration failed",
				slog.String("name", m.Name),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_migrations (name) VALUES (?)`), m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.Name, err)
		}

		c.logger.Info("Migration completed", slog.String("name", m.Name))
	}

	c.logger.Info("All migrations completed successfully")
	return nil
}
