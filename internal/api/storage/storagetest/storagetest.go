// Package storagetest opens a migrated sqlite database for tests.
package storagetest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/cuongbtq/interniq-be/shared/database"
	"github.com/stretchr/testify/require"
)

// NewClient returns a database client backed by a fresh sqlite file with
// every migration applied
func NewClient(t *testing.T) *database.Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := database.NewClient(&database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "interniq.db"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Migrate(context.Background(), storage.Migrations))
	return client
}

// New returns a Storage over NewClient
func New(t *testing.T) *storage.Storage {
	t.Helper()
	return storage.NewStorage(NewClient(t))
}
