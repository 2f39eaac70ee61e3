package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// setupTestStore creates a store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

// ==================== Store Creation ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DBName), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsRecordedOnce(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	v, err := store.version()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	var rows int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestNewStore_InvalidDir(t *testing.T) {
	_, err := NewStore("/dev/null/cannot/create")

	assert.Error(t, err)
}

// ==================== Token Store ====================

func TestTokenStore_RoundTrip(t *testing.T) {
	tokens := setupTestStore(t).TokenStore()
	ctx := context.Background()

	_, err := tokens.LoadToken(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, tokens.SaveToken(ctx, domain.Token{AccessToken: "a", TokenType: "bearer", Expiry: expiry}))
	require.NoError(t, tokens.SaveToken(ctx, domain.Token{AccessToken: "b", TokenType: "bearer", Expiry: expiry}))

	got, err := tokens.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", got.AccessToken)
	assert.True(t, expiry.Equal(got.Expiry))

	require.NoError(t, tokens.ClearToken(ctx))
	require.NoError(t, tokens.ClearToken(ctx), "clearing twice is fine")
	_, err = tokens.LoadToken(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTokenStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.TokenStore().SaveToken(ctx, domain.Token{AccessToken: "persisted"}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.TokenStore().LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.AccessToken)
}

// ==================== Upload Journal ====================

func TestUploadJournal_HasUploaded(t *testing.T) {
	journal := setupTestStore(t).UploadJournal()
	ctx := context.Background()

	require.NoError(t, journal.Record(ctx, domain.UploadRecord{
		Path: "/inbox/a.pdf", Checksum: "failed", Error: "Failed to upload document",
	}))
	require.NoError(t, journal.Record(ctx, domain.UploadRecord{
		Path: "/inbox/b.pdf", Checksum: "ok", DocumentID: "12",
	}))

	uploaded, err := journal.HasUploaded(ctx, "ok")
	require.NoError(t, err)
	assert.True(t, uploaded)

	uploaded, err = journal.HasUploaded(ctx, "failed")
	require.NoError(t, err)
	assert.False(t, uploaded, "failed attempts can be retried")

	uploaded, err = journal.HasUploaded(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, uploaded)
}

func TestUploadJournal_Recent(t *testing.T) {
	journal := setupTestStore(t).UploadJournal()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		require.NoError(t, journal.Record(ctx, domain.UploadRecord{
			Path:       "/inbox/" + name,
			Checksum:   name,
			DocumentID: name,
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := journal.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "/inbox/c.pdf", recent[0].Path)
	assert.Equal(t, "/inbox/b.pdf", recent[1].Path)
	assert.NotEmpty(t, recent[0].ID)

	all, err := journal.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
