// Package types provides shared type definitions for the DocChunk MCP server.
//
// This package defines the domain types used across components: file records
// and module buckets produced by the document parser, chunks and chunk
// results produced by the chunker, and the limits that derive per-position
// character budgets.
//
// # Core Types
//
// FileRecord is one file block extracted from a concatenated document:
//
//	record := types.FileRecord{
//	    Path:    "internal/auth/login.go",
//	    Header:  "## File: internal/auth/login.go",
//	    Content: "## File: internal/auth/login.go\npackage auth\n...",
//	}
//
// Chunk is one budget-bounded fragment of the document with its sequence
// metadata:
//
//	chunk := &types.Chunk{
//	    Content:  content,
//	    Index:    2,
//	    Strategy: types.StrategyModuleBased,
//	    Modules:  []string{"internal/auth"},
//	}
//
// # Budgets
//
// Limits carries the four reservation constants and derives the character
// budget for every chunk position:
//
//	limits := types.Limits{
//	    MaxContextChars:       96000,
//	    ReservedResponseChars: 16000,
//	    ReservedPromptChars:   4000,
//	    ReservedCarryChars:    8000,
//	}
//	limits.BudgetForPosition(0) // 76000
//	limits.BudgetForPosition(3) // 68000, later chunks carry prior context
//
// Budgets are character counts. Token estimates (EstimateTokens, chars/4
// rounded up) are metadata only and never drive packing decisions.
//
// # Validation
//
// Limits.Validate rejects any configuration whose derived budget is
// non-positive before chunking starts:
//
//	if err := limits.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package types
