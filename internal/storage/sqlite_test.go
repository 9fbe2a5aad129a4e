package storage

import (
	"context"
	"crypto/sha256"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSession(id string, chunkCount int) (*Session, []*types.Chunk) {
	limits := types.Limits{
		MaxContextChars:       1000,
		ReservedResponseChars: 100,
		ReservedPromptChars:   100,
		ReservedCarryChars:    200,
	}

	chunks := make([]*types.Chunk, 0, chunkCount)
	totalTokens := 0
	for i := 0; i < chunkCount; i++ {
		chunk := &types.Chunk{
			Content:     "# File: a.txt\ncontent\n",
			Index:       i,
			TotalChunks: chunkCount,
			Strategy:    types.StrategyModuleBased,
			Modules:     []string{"."},
			Files:       []string{"a.txt"},
		}
		totalTokens += chunk.ComputeTokenCount()
		chunks = append(chunks, chunk)
	}

	return &Session{
		ID:                   id,
		DocHash:              sha256.Sum256([]byte("doc")),
		DocBytes:             22,
		TotalChunks:          chunkCount,
		TotalEstimatedTokens: totalTokens,
		Limits:               limits,
	}, chunks
}

func TestCreateAndGetSession(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	session, chunks := testSession("sess-1", 3)
	require.NoError(t, store.CreateSession(ctx, session, chunks))

	got, err := store.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.DocHash, got.DocHash)
	assert.Equal(t, 3, got.TotalChunks)
	assert.Equal(t, session.Limits.MaxContextChars, got.Limits.MaxContextChars)
	assert.Equal(t, types.OverflowAllow, got.Limits.Policy())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateSession_Duplicate(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	session, chunks := testSession("dup", 1)
	require.NoError(t, store.CreateSession(ctx, session, chunks))

	again, moreChunks := testSession("dup", 1)
	err := store.CreateSession(ctx, again, moreChunks)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetSession_NotFound(t *testing.T) {
	store := newTestStorage(t)
	_, err := store.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetChunk(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	session, chunks := testSession("sess-2", 2)
	chunks[1].Overflow = true
	require.NoError(t, store.CreateSession(ctx, session, chunks))

	chunk, err := store.GetChunk(ctx, "sess-2", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, chunk.Index)
	assert.Equal(t, 2, chunk.TotalChunks)
	assert.Equal(t, chunks[1].Content, chunk.Content)
	assert.Equal(t, []string{"a.txt"}, chunk.Files)
	assert.True(t, chunk.Overflow)

	// Round-trips back to the domain type
	domain := chunk.ToTypesChunk()
	assert.Equal(t, types.StrategyModuleBased, domain.Strategy)
	assert.Equal(t, chunks[1].EstimatedTokens, domain.EstimatedTokens)

	_, err = store.GetChunk(ctx, "sess-2", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListChunks_Ordered(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	session, chunks := testSession("sess-3", 5)
	require.NoError(t, store.CreateSession(ctx, session, chunks))

	got, err := store.ListChunks(ctx, "sess-3")
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, chunk := range got {
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, 5, chunk.TotalChunks)
	}
}

func TestListSessions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		session, chunks := testSession(id, 1)
		require.NoError(t, store.CreateSession(ctx, session, chunks))
	}

	sessions, err := store.ListSessions(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)

	limited, err := store.ListSessions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDeleteSession_Cascades(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	session, chunks := testSession("gone", 2)
	require.NoError(t, store.CreateSession(ctx, session, chunks))
	require.NoError(t, store.DeleteSession(ctx, "gone"))

	_, err := store.GetSession(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetChunk(ctx, "gone", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.DeleteSession(ctx, "gone"), ErrNotFound)
}

func TestSessionDiagnosticsRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	session, chunks := testSession("diag", 1)
	session.Diagnostics = []types.OverflowDiagnostic{
		{ChunkIndex: 0, Path: "big.txt", LineBytes: 900, Budget: 800},
	}
	require.NoError(t, store.CreateSession(ctx, session, chunks))

	got, err := store.GetSession(ctx, "diag")
	require.NoError(t, err)
	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, "big.txt", got.Diagnostics[0].Path)
	assert.Equal(t, 900, got.Diagnostics[0].LineBytes)
}

func TestMigrationsIdempotent(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "migrate.db")

	store, err := NewSQLiteStorage(dbFile)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening applies no migration twice
	store, err = NewSQLiteStorage(dbFile)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
