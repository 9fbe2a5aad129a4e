package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docchunk-mcp/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.DBPath = t.TempDir()
	// Small budgets keep test documents small: 800 at position 0, 600 after
	cfg.Limits.MaxContextChars = 1000
	cfg.Limits.ReservedResponseChars = 100
	cfg.Limits.ReservedPromptChars = 100
	cfg.Limits.ReservedCarryChars = 200

	s, err := NewServer(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.storage.Close() })
	return s
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &data))
	return data
}

// fileBlock builds a document block of roughly size characters
func fileBlock(path string, size int) string {
	header := "# File: " + path + "\n"
	return header + strings.Repeat("x", size-len(header)-1) + "\n"
}

func TestChunkDocumentAndGetChunk(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	doc := fileBlock("m1/a.txt", 700) + fileBlock("m2/b.txt", 500)

	result, err := s.handleChunkDocument(ctx, callRequest(map[string]interface{}{
		"content": doc,
	}))
	require.NoError(t, err)

	data := resultJSON(t, result)
	assert.Equal(t, true, data["persisted"])
	assert.Equal(t, float64(2), data["total_chunks"])
	sessionID, _ := data["session_id"].(string)
	require.NotEmpty(t, sessionID)

	chunks, ok := data["chunks"].([]interface{})
	require.True(t, ok)
	require.Len(t, chunks, 2)
	first := chunks[0].(map[string]interface{})
	assert.Equal(t, "module_based", first["strategy"])

	// Fetch both chunks back in order
	for i := 0; i < 2; i++ {
		result, err := s.handleGetChunk(ctx, callRequest(map[string]interface{}{
			"session_id": sessionID,
			"index":      float64(i),
		}))
		require.NoError(t, err)

		chunk := resultJSON(t, result)
		assert.Equal(t, float64(i), chunk["index"])
		assert.Equal(t, float64(2), chunk["total_chunks"])
		assert.Equal(t, i == 1, chunk["is_last"])
		assert.NotEmpty(t, chunk["content"])
	}
}

func TestChunkDocument_NoPersist(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleChunkDocument(context.Background(), callRequest(map[string]interface{}{
		"content": fileBlock("a.txt", 100),
		"persist": false,
	}))
	require.NoError(t, err)

	data := resultJSON(t, result)
	assert.Equal(t, false, data["persisted"])
	assert.NotContains(t, data, "session_id")
}

func TestChunkDocument_EmptyContentIsValid(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleChunkDocument(context.Background(), callRequest(map[string]interface{}{
		"content": "",
	}))
	require.NoError(t, err)

	data := resultJSON(t, result)
	assert.Equal(t, float64(1), data["total_chunks"])
	assert.Equal(t, float64(0), data["total_estimated_tokens"])
}

func TestChunkDocument_MissingContent(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleChunkDocument(context.Background(), callRequest(map[string]interface{}{}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr))
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestChunkDocument_LimitOverrides(t *testing.T) {
	s := newTestServer(t)

	// Shrinking the window forces more chunks out of the same document
	doc := fileBlock("m1/a.txt", 300) + fileBlock("m2/b.txt", 300)

	result, err := s.handleChunkDocument(context.Background(), callRequest(map[string]interface{}{
		"content":                 doc,
		"max_context_chars":       float64(500),
		"reserved_response_chars": float64(100),
		"reserved_prompt_chars":   float64(50),
		"reserved_carry_chars":    float64(25),
	}))
	require.NoError(t, err)

	data := resultJSON(t, result)
	assert.Equal(t, float64(2), data["total_chunks"])
}

func TestChunkDocument_InvalidLimits(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleChunkDocument(context.Background(), callRequest(map[string]interface{}{
		"content":                 "doc",
		"max_context_chars":       float64(100),
		"reserved_response_chars": float64(200),
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr))
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestChunkDocument_RejectPolicy(t *testing.T) {
	s := newTestServer(t)

	doc := "# File: big.txt\n" + strings.Repeat("w", 900) + "\n"

	_, err := s.handleChunkDocument(context.Background(), callRequest(map[string]interface{}{
		"content":         doc,
		"overflow_policy": "reject",
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr))
	assert.Equal(t, ErrorCodeLineOverflow, mcpErr.Code)
}

func TestGetChunk_UnknownSession(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleGetChunk(context.Background(), callRequest(map[string]interface{}{
		"session_id": "does-not-exist",
		"index":      float64(0),
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr))
	assert.Equal(t, ErrorCodeSessionNotFound, mcpErr.Code)
}

func TestGetChunk_IndexOutOfRange(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleChunkDocument(ctx, callRequest(map[string]interface{}{
		"content": fileBlock("a.txt", 100),
	}))
	require.NoError(t, err)
	sessionID := resultJSON(t, result)["session_id"].(string)

	_, err = s.handleGetChunk(ctx, callRequest(map[string]interface{}{
		"session_id": sessionID,
		"index":      float64(5),
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr))
	assert.Equal(t, ErrorCodeChunkNotFound, mcpErr.Code)
}

func TestListAndDeleteSessions(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		result, err := s.handleChunkDocument(ctx, callRequest(map[string]interface{}{
			"content": fileBlock(fmt.Sprintf("f%d.txt", i), 100),
		}))
		require.NoError(t, err)
		ids = append(ids, resultJSON(t, result)["session_id"].(string))
	}

	result, err := s.handleListSessions(ctx, callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, float64(3), resultJSON(t, result)["count"])

	result, err = s.handleDeleteSession(ctx, callRequest(map[string]interface{}{
		"session_id": ids[0],
	}))
	require.NoError(t, err)
	assert.Equal(t, true, resultJSON(t, result)["deleted"])

	result, err = s.handleListSessions(ctx, callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, float64(2), resultJSON(t, result)["count"])

	_, err = s.handleDeleteSession(ctx, callRequest(map[string]interface{}{
		"session_id": ids[0],
	}))
	require.Error(t, err)
}
