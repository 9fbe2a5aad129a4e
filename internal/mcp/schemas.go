package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkDocumentTool returns the tool definition for chunk_document
func chunkDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_document",
		Description: "Split a concatenated multi-file document into budget-bounded chunks and store them as a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "The document to split. File blocks are introduced by lines of the form '## File: path'",
				},
				"max_context_chars": map[string]interface{}{
					"type":        "integer",
					"description": "Override the configured context window size (characters)",
					"minimum":     1,
				},
				"reserved_response_chars": map[string]interface{}{
					"type":        "integer",
					"description": "Override the characters reserved for the generation response",
					"minimum":     0,
				},
				"reserved_prompt_chars": map[string]interface{}{
					"type":        "integer",
					"description": "Override the characters reserved for fixed prompt overhead",
					"minimum":     0,
				},
				"reserved_carry_chars": map[string]interface{}{
					"type":        "integer",
					"description": "Override the characters reserved, from the second chunk on, for the carried summary of prior chunks",
					"minimum":     0,
				},
				"overflow_policy": map[string]interface{}{
					"type":        "string",
					"description": "What to do when a single line alone exceeds a chunk's budget",
					"enum":        []string{"allow", "reject"},
				},
				"persist": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, store the chunks so they can be fetched with get_chunk",
					"default":     true,
				},
			},
			Required: []string{"content"},
		},
	}
}

// getChunkTool returns the tool definition for get_chunk
func getChunkTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_chunk",
		Description: "Fetch one chunk of a stored session by its position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID returned by chunk_document",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "0-based chunk position",
					"minimum":     0,
				},
			},
			Required: []string{"session_id", "index"},
		},
	}
}

// listSessionsTool returns the tool definition for list_sessions
func listSessionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_sessions",
		Description: "List stored chunking sessions, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of sessions to return",
					"default":     50,
					"minimum":     1,
					"maximum":     500,
				},
			},
		},
	}
}

// deleteSessionTool returns the tool definition for delete_session
func deleteSessionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a stored session and all of its chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to delete",
				},
			},
			Required: []string{"session_id"},
		},
	}
}
