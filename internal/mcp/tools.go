package mcp

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/internal/storage"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams   = -32602 // Invalid method parameters
	ErrorCodeInternalError   = -32603 // Internal JSON-RPC error
	ErrorCodeSessionNotFound = -32001 // Unknown session ID
	ErrorCodeChunkNotFound   = -32002 // Chunk index out of range for the session
	ErrorCodeLineOverflow    = -32003 // A single line exceeded the chunk budget under the reject policy
)

// handleChunkDocument handles the chunk_document tool invocation
func (s *Server) handleChunkDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	content, ok := args["content"].(string)
	if !ok {
		// An empty document is valid input; only a missing parameter is an error
		return nil, newMCPError(ErrorCodeInvalidParams, "content parameter is required", map[string]interface{}{
			"param":  "content",
			"reason": "missing",
		})
	}

	limits := s.defaults
	limits.MaxContextChars = getIntDefault(args, "max_context_chars", limits.MaxContextChars)
	limits.ReservedResponseChars = getIntDefault(args, "reserved_response_chars", limits.ReservedResponseChars)
	limits.ReservedPromptChars = getIntDefault(args, "reserved_prompt_chars", limits.ReservedPromptChars)
	limits.ReservedCarryChars = getIntDefault(args, "reserved_carry_chars", limits.ReservedCarryChars)
	if policy := getStringDefault(args, "overflow_policy", ""); policy != "" {
		limits.Overflow = types.OverflowPolicy(policy)
	}
	if err := limits.Validate(); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid limits", map[string]interface{}{
			"reason": err.Error(),
		})
	}

	result, err := chunker.New(limits).Chunk(content)
	if err != nil {
		if errors.Is(err, types.ErrLineOverflow) {
			return nil, newMCPError(ErrorCodeLineOverflow, "document has a line larger than the chunk budget", map[string]interface{}{
				"reason": err.Error(),
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	sessionID := ""
	if getBoolDefault(args, "persist", true) {
		sessionID = uuid.NewString()
		session := &storage.Session{
			ID:                   sessionID,
			DocHash:              sha256.Sum256([]byte(content)),
			DocBytes:             int64(len(content)),
			TotalChunks:          len(result.Chunks),
			TotalEstimatedTokens: result.TotalEstimatedTokens,
			Limits:               limits,
			Diagnostics:          result.Diagnostics,
		}
		if err := s.storage.CreateSession(ctx, session, result.Chunks); err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to store session", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	s.log.Info().
		Str("session_id", sessionID).
		Int("doc_bytes", len(content)).
		Int("chunks", len(result.Chunks)).
		Int("overflows", len(result.Diagnostics)).
		Msg("document chunked")

	chunkMeta := make([]map[string]interface{}, 0, len(result.Chunks))
	for _, chunk := range result.Chunks {
		chunkMeta = append(chunkMeta, map[string]interface{}{
			"index":            chunk.Index,
			"strategy":         string(chunk.Strategy),
			"modules":          chunk.Modules,
			"files":            chunk.Files,
			"content_bytes":    len(chunk.Content),
			"estimated_tokens": chunk.EstimatedTokens,
			"overflow":         chunk.Overflow,
		})
	}

	response := map[string]interface{}{
		"persisted":              sessionID != "",
		"total_chunks":           len(result.Chunks),
		"total_estimated_tokens": result.TotalEstimatedTokens,
		"chunks":                 chunkMeta,
	}
	if sessionID != "" {
		response["session_id"] = sessionID
	}
	if len(result.Diagnostics) > 0 {
		response["diagnostics"] = result.Diagnostics
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetChunk handles the get_chunk tool invocation
func (s *Server) handleGetChunk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	sessionID, ok := args["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "session_id parameter is required", map[string]interface{}{
			"param":  "session_id",
			"reason": "missing or empty",
		})
	}
	index := getIntDefault(args, "index", -1)
	if index < 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "index parameter is required and must be >= 0", map[string]interface{}{
			"param": "index",
		})
	}

	chunk, err := s.storage.GetChunk(ctx, sessionID, index)
	if errors.Is(err, storage.ErrNotFound) {
		// Distinguish an unknown session from an out-of-range index
		if _, serr := s.storage.GetSession(ctx, sessionID); errors.Is(serr, storage.ErrNotFound) {
			return nil, newMCPError(ErrorCodeSessionNotFound, "session not found", map[string]interface{}{
				"session_id": sessionID,
			})
		}
		return nil, newMCPError(ErrorCodeChunkNotFound, "chunk index out of range", map[string]interface{}{
			"session_id": sessionID,
			"index":      index,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load chunk", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"session_id":       chunk.SessionID,
		"index":            chunk.Index,
		"total_chunks":     chunk.TotalChunks,
		"strategy":         chunk.Strategy,
		"modules":          chunk.Modules,
		"files":            chunk.Files,
		"estimated_tokens": chunk.EstimatedTokens,
		"overflow":         chunk.Overflow,
		"is_last":          chunk.Index == chunk.TotalChunks-1,
		"content":          chunk.Content,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListSessions handles the list_sessions tool invocation
func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	limit := getIntDefault(args, "limit", 50)

	sessions, err := s.storage.ListSessions(ctx, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list sessions", map[string]interface{}{
			"error": err.Error(),
		})
	}

	items := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, map[string]interface{}{
			"session_id":             session.ID,
			"doc_bytes":              session.DocBytes,
			"doc_hash":               fmt.Sprintf("%x", session.DocHash[:8]),
			"total_chunks":           session.TotalChunks,
			"total_estimated_tokens": session.TotalEstimatedTokens,
			"overflows":              len(session.Diagnostics),
			"created_at":             session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"sessions": items,
		"count":    len(items),
	})), nil
}

// handleDeleteSession handles the delete_session tool invocation
func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	sessionID, ok := args["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "session_id parameter is required", map[string]interface{}{
			"param":  "session_id",
			"reason": "missing or empty",
		})
	}

	err := s.storage.DeleteSession(ctx, sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeSessionNotFound, "session not found", map[string]interface{}{
			"session_id": sessionID,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to delete session", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.log.Info().Str("session_id", sessionID).Msg("session deleted")

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"deleted":    true,
		"session_id": sessionID,
	})), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
