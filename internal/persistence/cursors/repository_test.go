package cursors_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"skyscraper/internal/config"
	"skyscraper/internal/persistence"
	"skyscraper/internal/persistence/cursors"
)

func testRepository(t *testing.T) *cursors.Repository {
	t.Helper()

	db := &persistence.DB{
		Config: &config.Config{DatabaseURL: filepath.Join(t.TempDir(), "test.sqlite")},
	}
	require.NoError(t, db.Init(t.Context()))
	t.Cleanup(func() { db.Shutdown(context.Background()) }) //nolint:errcheck

	repo := &cursors.Repository{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:     db,
	}
	require.NoError(t, repo.Init(t.Context()))

	return repo
}

func TestGetDefaultsToZero(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	cursor, err := repo.Get(t.Context(), "jetstream")
	require.NoError(t, err)
	require.Zero(t, cursor)
}

func TestPutThenGet(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	require.NoError(t, repo.Put(t.Context(), "jetstream", 1715000000000000))

	cursor, err := repo.Get(t.Context(), "jetstream")
	require.NoError(t, err)
	require.EqualValues(t, 1715000000000000, cursor)
}

func TestPutOverwrites(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	require.NoError(t, repo.Put(t.Context(), "jetstream", 100))
	require.NoError(t, repo.Put(t.Context(), "jetstream", 200))

	cursor, err := repo.Get(t.Context(), "jetstream")
	require.NoError(t, err)
	require.EqualValues(t, 200, cursor)
}

func TestCursorsAreKeyedByService(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	require.NoError(t, repo.Put(t.Context(), "jetstream", 100))
	require.NoError(t, repo.Put(t.Context(), "firehose", 300))

	cursor, err := repo.Get(t.Context(), "jetstream")
	require.NoError(t, err)
	require.EqualValues(t, 100, cursor)
}
