package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/mapsrc/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		for _, table := range []string{"extensions", "categories", "content"} {
			var n int
			err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
			require.NoError(t, err, table)
		}
	})

	t.Run("reopening keeps existing schema", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/content.db"
		ctx := context.Background()

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		require.NoError(t, sqlite.NewContentStore(db, "content").EnableExtension(ctx))
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		require.NoError(t, sqlite.NewContentStore(db, "content").Available(ctx))
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("enforces foreign keys", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		_, err := db.ExecContext(context.Background(), `
			INSERT INTO content (id, catid, modified, publish_up)
			VALUES (1, 99, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')
		`)
		require.Error(t, err)
	})

	t.Run("close without open is a no-op", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, sqlite.NewDB(":memory:").Close())
	})
}
