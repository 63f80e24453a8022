package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songhaven/songbook/internal/domain"
)

func newTestRepository(t *testing.T) *BookmarkRepository {
	t.Helper()

	repo, err := Open(filepath.Join(t.TempDir(), "bookmarks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func testSubset() []domain.SavedSong {
	return []domain.SavedSong{
		{DocumentID: "doc-1", ID: 1, Title: "First"},
		{DocumentID: "", ID: 2, Title: "Local Draft"},
		{DocumentID: "doc-3", ID: 3, Title: "Third"},
	}
}

func TestBookmarkRepository_SaveAndLoad(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSubset()))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSubset(), loaded)
}

func TestBookmarkRepository_Load_Empty(t *testing.T) {
	repo := newTestRepository(t)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestBookmarkRepository_Save_ReplacesWholesale(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSubset()))
	require.NoError(t, repo.Save(ctx, []domain.SavedSong{{DocumentID: "doc-9", ID: 9, Title: "Only"}}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Only", loaded[0].Title)
}

func TestBookmarkRepository_Save_PreservesOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	reversed := []domain.SavedSong{
		{DocumentID: "doc-3", ID: 3, Title: "Third"},
		{DocumentID: "doc-1", ID: 1, Title: "First"},
	}
	require.NoError(t, repo.Save(ctx, reversed))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Third", loaded[0].Title)
	assert.Equal(t, "First", loaded[1].Title)
}

func TestBookmarkRepository_Clear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSubset()))
	require.NoError(t, repo.Clear(ctx))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestBookmarkRepository_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	ctx := context.Background()

	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, testSubset()))
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSubset(), loaded)
}
