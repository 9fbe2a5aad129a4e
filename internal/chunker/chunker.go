package chunker

import (
	"fmt"

	"github.com/dshills/docchunk-mcp/internal/document"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// Chunker splits one concatenated source document into an ordered sequence
// of budget-bounded chunks. It holds no state between invocations; the same
// limits produce the same partition for the same input.
type Chunker struct {
	limits types.Limits
}

// New creates a Chunker with the given limits
func New(limits types.Limits) *Chunker {
	return &Chunker{limits: limits}
}

// Chunk splits the document and returns the finalized chunk sequence.
//
// Fast path: a document with no file headers, or one that fits the
// position-0 budget whole, becomes a single whole-document chunk. Otherwise
// module buckets are packed greedily, with oversized buckets cascading to
// file-level and then line-level splitting.
func (c *Chunker) Chunk(doc string) (*types.ChunkResult, error) {
	if err := c.limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}

	records := document.Parse(doc)
	if len(records) == 0 || len(doc) <= c.limits.BudgetForPosition(0) {
		return finalize([]*types.Chunk{wholeDocumentChunk(doc, records)}, nil), nil
	}

	chunks, diags, err := c.packBuckets(document.Group(records))
	if err != nil {
		return nil, err
	}
	return finalize(chunks, diags), nil
}

// packBuckets greedily places whole module buckets into a growing chunk
// until the next bucket would overflow the active budget, then reseals and
// continues under the next position's budget. A bucket that alone overflows
// a fresh budget is delegated whole to the file splitter.
//
// The position of the chunk under construction is always len(chunks), so
// the active budget is recomputed from it after every seal.
func (c *Chunker) packBuckets(buckets []types.ModuleBucket) ([]*types.Chunk, []types.OverflowDiagnostic, error) {
	var (
		chunks []*types.Chunk
		diags  []types.OverflowDiagnostic
		acc    accumulator
	)

	for _, bucket := range buckets {
		size := bucket.Size()

		if acc.size+size <= c.limits.BudgetForPosition(len(chunks)) {
			acc.addBucket(bucket)
			continue
		}

		if !acc.isEmpty() {
			chunks = append(chunks, acc.seal(len(chunks), types.StrategyModuleBased))
		}

		// Fresh accumulator at the advanced position; exact fit counts
		if size <= c.limits.BudgetForPosition(len(chunks)) {
			acc.addBucket(bucket)
			continue
		}

		fileChunks, fileDiags, err := c.splitBucket(bucket, len(chunks))
		if err != nil {
			return nil, nil, err
		}
		chunks = append(chunks, fileChunks...)
		diags = append(diags, fileDiags...)
	}

	if !acc.isEmpty() {
		chunks = append(chunks, acc.seal(len(chunks), types.StrategyModuleBased))
	}

	return chunks, diags, nil
}

// wholeDocumentChunk builds the single fast-path chunk. Records may be
// empty (header-less or empty input) or the document's full file set.
func wholeDocumentChunk(doc string, records []types.FileRecord) *types.Chunk {
	chunk := &types.Chunk{
		Content:  doc,
		Index:    0,
		Strategy: types.StrategyWholeDocument,
	}
	seen := make(map[string]struct{})
	for _, rec := range records {
		chunk.Files = append(chunk.Files, rec.Path)
		key := document.ModuleKey(rec.Path)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			chunk.Modules = append(chunk.Modules, key)
		}
	}
	return chunk
}

// finalize backfills every chunk's total count and sums token estimates
func finalize(chunks []*types.Chunk, diags []types.OverflowDiagnostic) *types.ChunkResult {
	total := 0
	for _, chunk := range chunks {
		chunk.TotalChunks = len(chunks)
		total += chunk.ComputeTokenCount()
	}
	return &types.ChunkResult{
		Chunks:               chunks,
		TotalEstimatedTokens: total,
		Diagnostics:          diags,
	}
}
