package profiles_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/stretchr/testify/require"

	"skyscraper/internal/config"
	"skyscraper/internal/core"
	"skyscraper/internal/persistence"
	"skyscraper/internal/persistence/profiles"
)

func testRepository(t *testing.T) *profiles.Repository {
	t.Helper()

	db := &persistence.DB{
		Config: &config.Config{DatabaseURL: filepath.Join(t.TempDir(), "test.sqlite")},
	}
	require.NoError(t, db.Init(t.Context()))
	t.Cleanup(func() { db.Shutdown(context.Background()) }) //nolint:errcheck

	repo := &profiles.Repository{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:     db,
	}
	require.NoError(t, repo.Init(t.Context()))

	return repo
}

func fullFields() core.ProfileFields {
	return core.ProfileFields{
		DID:            "did:plc:abc",
		Handle:         omit.From("alice.bsky.social"),
		DisplayName:    omitnull.From("Alice"),
		Description:    omitnull.From("hello"),
		FollowsCount:   omit.From[int64](10),
		FollowersCount: omit.From[int64](20),
		PostsCount:     omit.From[int64](30),
		IndexedAt:      omit.From(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func TestUpsertCreates(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	profile, err := repo.Upsert(t.Context(), fullFields())
	require.NoError(t, err)

	require.NotZero(t, profile.ID)
	require.Equal(t, "did:plc:abc", profile.DID)
	require.Equal(t, "alice.bsky.social", profile.Handle)
	require.NotNil(t, profile.Description)
	require.Equal(t, "hello", *profile.Description)
	require.EqualValues(t, 30, profile.PostsCount)
}

func TestUpsertIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	first, err := repo.Upsert(t.Context(), fullFields())
	require.NoError(t, err)

	second, err := repo.Upsert(t.Context(), fullFields())
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)

	all, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpsertUpdatesMutableFields(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	first, err := repo.Upsert(t.Context(), fullFields())
	require.NoError(t, err)

	updated := fullFields()
	updated.Handle = omit.From("alice.example.com")
	updated.PostsCount = omit.From[int64](31)

	second, err := repo.Upsert(t.Context(), updated)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "alice.example.com", second.Handle)
	require.EqualValues(t, 31, second.PostsCount)
}

func TestUpsertLeavesUnsetFieldsAlone(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	_, err := repo.Upsert(t.Context(), fullFields())
	require.NoError(t, err)

	// A minimal payload, as built from a post's embedded author: the
	// description is unset, not empty.
	minimal := core.ProfileFields{
		DID:    "did:plc:abc",
		Handle: omit.From("alice.bsky.social"),
	}

	profile, err := repo.Upsert(t.Context(), minimal)
	require.NoError(t, err)

	require.NotNil(t, profile.Description)
	require.Equal(t, "hello", *profile.Description)
	require.EqualValues(t, 30, profile.PostsCount)
}

func TestUpsertRequiresDID(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	fields := fullFields()
	fields.DID = ""

	_, err := repo.Upsert(t.Context(), fields)
	require.ErrorIs(t, err, core.ErrMissingKey)

	all, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFindByDIDNotFound(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	_, err := repo.FindByDID(t.Context(), "did:plc:nope")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestFindByHandle(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	_, err := repo.Upsert(t.Context(), fullFields())
	require.NoError(t, err)

	profile, err := repo.FindByHandle(t.Context(), "alice.bsky.social")
	require.NoError(t, err)
	require.Equal(t, "did:plc:abc", profile.DID)

	_, err = repo.FindByHandle(t.Context(), "bob.bsky.social")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestExistsByDID(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)

	_, err := repo.Upsert(t.Context(), fullFields())
	require.NoError(t, err)

	existing, err := repo.ExistsByDID(t.Context(), "did:plc:abc", "did:plc:other")
	require.NoError(t, err)

	require.True(t, existing["did:plc:abc"])
	require.False(t, existing["did:plc:other"])
}
