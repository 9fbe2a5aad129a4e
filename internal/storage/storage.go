package storage

import (
	"context"
	"time"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Storage defines the interface for persisting chunk sessions so MCP
// clients can fetch chunks one at a time instead of receiving a whole
// partition in a single oversized tool response
type Storage interface {
	// Session operations. CreateSession persists the session row and all
	// of its chunks atomically.
	CreateSession(ctx context.Context, session *Session, chunks []*types.Chunk) error
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, limit int) ([]*Session, error)
	DeleteSession(ctx context.Context, id string) error

	// Chunk operations
	GetChunk(ctx context.Context, sessionID string, index int) (*Chunk, error)
	ListChunks(ctx context.Context, sessionID string) ([]*Chunk, error)

	// Database operations
	Close() error
}

// Session represents one persisted chunking invocation
type Session struct {
	ID                   string
	DocHash              [32]byte
	DocBytes             int64
	TotalChunks          int
	TotalEstimatedTokens int
	Limits               types.Limits
	Diagnostics          []types.OverflowDiagnostic
	CreatedAt            time.Time
}

// Chunk represents a persisted chunk row
type Chunk struct {
	SessionID       string
	Index           int
	TotalChunks     int
	Content         string
	Strategy        string
	Modules         []string
	Files           []string
	EstimatedTokens int
	Overflow        bool
	CreatedAt       time.Time
}

// ToTypesChunk converts a storage Chunk back to the domain type
func (c *Chunk) ToTypesChunk() *types.Chunk {
	return &types.Chunk{
		Content:         c.Content,
		EstimatedTokens: c.EstimatedTokens,
		Index:           c.Index,
		TotalChunks:     c.TotalChunks,
		Strategy:        types.Strategy(c.Strategy),
		Modules:         c.Modules,
		Files:           c.Files,
		Overflow:        c.Overflow,
	}
}

// FromTypesChunk converts a domain chunk to its storage representation
func FromTypesChunk(chunk *types.Chunk, sessionID string) *Chunk {
	return &Chunk{
		SessionID:       sessionID,
		Index:           chunk.Index,
		TotalChunks:     chunk.TotalChunks,
		Content:         chunk.Content,
		Strategy:        string(chunk.Strategy),
		Modules:         chunk.Modules,
		Files:           chunk.Files,
		EstimatedTokens: chunk.EstimatedTokens,
		Overflow:        chunk.Overflow,
	}
}
