package types

import "errors"

// Strategy identifies which fallback tier produced a chunk
type Strategy string

const (
	// StrategyWholeDocument means the entire document fit in one chunk
	StrategyWholeDocument Strategy = "whole_document"
	// StrategyModuleBased means whole module buckets were packed together
	StrategyModuleBased Strategy = "module_based"
	// StrategyFileSplit means an oversized module was split at file or line boundaries
	StrategyFileSplit Strategy = "file_split"
)

// Chunk represents one bounded-size fragment of the source document plus
// the metadata needed to submit it in sequence
type Chunk struct {
	// Content
	Content         string
	EstimatedTokens int

	// Position
	Index       int // 0-based position in the chunk sequence
	TotalChunks int // Backfilled by the finalizer; valid only inside a ChunkResult

	// Metadata
	Strategy Strategy
	Modules  []string // Contributing module keys, in document order
	Files    []string // Contributing file paths, in document order

	// Overflow is true when the chunk carries a single line that alone
	// exceeded its position's budget. The only permitted budget violation.
	Overflow bool
}

// ComputeTokenCount estimates and records the chunk's token count
func (c *Chunk) ComputeTokenCount() int {
	c.EstimatedTokens = EstimateTokens(c.Content)
	return c.EstimatedTokens
}

// ValidateStrategy checks if the chunk strategy is valid
func (c *Chunk) ValidateStrategy() error {
	switch c.Strategy {
	case StrategyWholeDocument, StrategyModuleBased, StrategyFileSplit:
		return nil
	default:
		return errors.New("invalid chunk strategy")
	}
}

// EstimateTokens approximates the token count of a string using the fixed
// four-characters-per-token heuristic, rounding up. Estimates are metadata
// only; packing decisions always compare raw character counts.
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// OverflowDiagnostic records a single-line budget overflow: a line that
// could not fit a freshly started fragment's entire budget and was emitted
// whole rather than split mid-line
type OverflowDiagnostic struct {
	ChunkIndex int    `json:"chunk_index"`
	Path       string `json:"path"`
	LineBytes  int    `json:"line_bytes"`
	Budget     int    `json:"budget"`
}

// ChunkResult is the sole return value of a chunking invocation
type ChunkResult struct {
	Chunks               []*Chunk
	TotalEstimatedTokens int

	// Diagnostics holds one entry per flagged single-line overflow.
	// Always empty under OverflowReject, which fails instead.
	Diagnostics []OverflowDiagnostic
}
