// Package chunker splits one large concatenated source document into an
// ordered sequence of budget-bounded chunks for submission to a
// size-limited text-generation service.
//
// # Basic Usage
//
//	c := chunker.New(limits)
//	result, err := c.Chunk(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, chunk := range result.Chunks {
//	    fmt.Printf("chunk %d/%d: %d files, ~%d tokens\n",
//	        chunk.Index+1, chunk.TotalChunks, len(chunk.Files), chunk.EstimatedTokens)
//	}
//
// # Budgets
//
// The budget is exact and position-dependent: chunk 0 gets the context
// window minus the response and prompt reservations, and every later chunk
// additionally reserves room for the caller's rolling summary of prior
// chunks. Budgets are recomputed at every seal; positions after the first
// are strictly smaller whenever a carried-context reservation is set.
//
// # Fallback Tiers
//
// Packing degrades through three tiers instead of failing on oversized
// input:
//
//   - Module: whole module buckets are packed greedily in first-seen order.
//   - File: an oversized bucket is repacked file by file.
//   - Line: an oversized file is split on line boundaries, its header
//     repeated atop every fragment.
//
// Below the module tier, every sealed chunk has its code fences balanced so
// a fragment cut mid-block still renders as a closed block.
//
// The single permitted budget violation is a lone line that exceeds a fresh
// fragment's entire budget: lines are never split mid-line, so the fragment
// overflows and the result carries a diagnostic. Limits.Overflow selects
// whether that is tolerated or fails the whole invocation.
//
// # Purity
//
// Chunking is a total, synchronous, side-effect-free function of the
// document and the limits. Repeated or concurrent calls are safe without
// coordination; ChunkAll exploits this to chunk independent documents in
// parallel.
package chunker
