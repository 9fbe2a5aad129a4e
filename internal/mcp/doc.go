// Package mcp implements the Model Context Protocol server for DocChunk.
//
// The server exposes the token-budget chunker over MCP stdio. Chunking a
// large document produces a partition that is usually too big to return in
// one tool response, so chunk_document stores the chunks as a session and
// returns metadata only; the client then pulls chunks one at a time.
//
// # Tools
//
// chunk_document splits a concatenated multi-file document:
//
//	{
//	  "content": "## File: a.go\n...",
//	  "max_context_chars": 96000,
//	  "overflow_policy": "allow",
//	  "persist": true
//	}
//
// The response carries the session ID, per-chunk metadata (position,
// strategy, modules, files, token estimate, overflow flag), and any
// single-line overflow diagnostics. Limit parameters default to the
// server's configuration and may be overridden per call.
//
// get_chunk fetches one chunk by position:
//
//	{"session_id": "…", "index": 2}
//
// The response includes is_last so a client can stop at the final chunk
// without tracking totals itself. list_sessions and delete_session manage
// the stored sessions.
//
// # Protocol Notes
//
// Stdout is reserved for the MCP protocol; all logging goes to stderr.
// Errors use JSON-RPC codes: -32602 invalid params, -32603 internal,
// -32001 unknown session, -32002 chunk index out of range, -32003 line
// overflow under the reject policy.
package mcp
