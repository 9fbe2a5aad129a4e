package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// CreateSession persists the session row and all of its chunks in one
// transaction, so a session is never visible with a partial partition
func (s *SQLiteStorage) CreateSession(ctx context.Context, session *Session, chunks []*types.Chunk) error {
	if session.ID == "" {
		return errors.New("session ID is required")
	}

	diagJSON, err := json.Marshal(session.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (
			id, doc_hash, doc_bytes, total_chunks, total_estimated_tokens,
			max_context_chars, reserved_response_chars, reserved_prompt_chars,
			reserved_carry_chars, overflow_policy, diagnostics, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		session.ID, session.DocHash[:], session.DocBytes, session.TotalChunks,
		session.TotalEstimatedTokens, session.Limits.MaxContextChars,
		session.Limits.ReservedResponseChars, session.Limits.ReservedPromptChars,
		session.Limits.ReservedCarryChars, string(session.Limits.Policy()),
		string(diagJSON), now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}
	session.CreatedAt = now

	for _, chunk := range chunks {
		modulesJSON, err := json.Marshal(emptyIfNil(chunk.Modules))
		if err != nil {
			return fmt.Errorf("failed to encode modules: %w", err)
		}
		filesJSON, err := json.Marshal(emptyIfNil(chunk.Files))
		if err != nil {
			return fmt.Errorf("failed to encode files: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO chunks (
				session_id, chunk_index, content, strategy, modules, files,
				estimated_tokens, overflow, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			session.ID, chunk.Index, chunk.Content, string(chunk.Strategy),
			string(modulesJSON), string(filesJSON), chunk.EstimatedTokens,
			boolToInt(chunk.Overflow), now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", chunk.Index, err)
		}
	}

	return tx.Commit()
}

// GetSession retrieves a session by ID
func (s *SQLiteStorage) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, doc_hash, doc_bytes, total_chunks, total_estimated_tokens,
		       max_context_chars, reserved_response_chars, reserved_prompt_chars,
		       reserved_carry_chars, overflow_policy, diagnostics, created_at
		FROM sessions WHERE id = ?
	`, id)
	return scanSession(row)
}

// ListSessions returns sessions ordered by creation time, newest first
func (s *SQLiteStorage) ListSessions(ctx context.Context, limit int) ([]*Session, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_hash, doc_bytes, total_chunks, total_estimated_tokens,
		       max_context_chars, reserved_response_chars, reserved_prompt_chars,
		       reserved_carry_chars, overflow_policy, diagnostics, created_at
		FROM sessions ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and, via cascade, all of its chunks
func (s *SQLiteStorage) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetChunk retrieves one chunk of a session by its position
func (s *SQLiteStorage) GetChunk(ctx context.Context, sessionID string, index int) (*Chunk, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, chunk_index, content, strategy, modules, files,
		       estimated_tokens, overflow, created_at
		FROM chunks WHERE session_id = ? AND chunk_index = ?
	`, sessionID, index)

	chunk, err := scanChunk(row)
	if err != nil {
		return nil, err
	}
	chunk.TotalChunks = session.TotalChunks
	return chunk, nil
}

// ListChunks returns all chunks of a session in sequence order
func (s *SQLiteStorage) ListChunks(ctx context.Context, sessionID string) ([]*Chunk, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, chunk_index, content, strategy, modules, files,
		       estimated_tokens, overflow, created_at
		FROM chunks WHERE session_id = ? ORDER BY chunk_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []*Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunk.TotalChunks = session.TotalChunks
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*Session, error) {
	var (
		session  Session
		hash     []byte
		policy   string
		diagJSON string
	)
	err := row.Scan(
		&session.ID, &hash, &session.DocBytes, &session.TotalChunks,
		&session.TotalEstimatedTokens, &session.Limits.MaxContextChars,
		&session.Limits.ReservedResponseChars, &session.Limits.ReservedPromptChars,
		&session.Limits.ReservedCarryChars, &policy, &diagJSON, &session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	copy(session.DocHash[:], hash)
	session.Limits.Overflow = types.OverflowPolicy(policy)
	if err := json.Unmarshal([]byte(diagJSON), &session.Diagnostics); err != nil {
		return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
	}
	return &session, nil
}

func scanChunk(row scanner) (*Chunk, error) {
	var (
		chunk       Chunk
		modulesJSON string
		filesJSON   string
		overflow    int
	)
	err := row.Scan(
		&chunk.SessionID, &chunk.Index, &chunk.Content, &chunk.Strategy,
		&modulesJSON, &filesJSON, &chunk.EstimatedTokens, &overflow, &chunk.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunk: %w", err)
	}

	chunk.Overflow = overflow != 0
	if err := json.Unmarshal([]byte(modulesJSON), &chunk.Modules); err != nil {
		return nil, fmt.Errorf("failed to decode modules: %w", err)
	}
	if err := json.Unmarshal([]byte(filesJSON), &chunk.Files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}
	return &chunk, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation detects primary-key violations without depending on a
// specific driver's error type
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint violation")
}
