// Package storage persists chunking sessions in SQLite so MCP clients can
// retrieve chunks one at a time.
//
// A chunk_document tool call returns only metadata; the chunk contents are
// written here under a session ID, and the client fetches each chunk by
// position when it is ready to submit it. This keeps individual MCP tool
// responses bounded even when the partition itself is large.
//
// # Schema
//
// Two tables, versioned by migrations:
//
//   - sessions: one row per chunking invocation, holding the document hash and size,
//     chunk totals, the limits the partition was computed under, and any
//     overflow diagnostics (JSON).
//   - chunks: the ordered partition, keyed by (session_id, chunk_index),
//     with strategy, module/file metadata (JSON), token estimate, and the
//     overflow flag.
//
// Deleting a session cascades to its chunks.
//
// # Drivers
//
// Two SQLite drivers are supported via build tags:
//
//	CGO_ENABLED=0 go build ./...                    // modernc.org/sqlite (default)
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...   // mattn/go-sqlite3
//
// # Usage
//
//	store, err := storage.NewSQLiteStorage(dbFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.CreateSession(ctx, session, result.Chunks)
//	chunk, err := store.GetChunk(ctx, session.ID, 0)
package storage
