package chunker

import (
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// splitBucket packs the files of one oversized module bucket with the same
// greedy/reseal algorithm as the module packer, starting at the given chunk
// position. Each emitted chunk records only its contributing module. A file
// that alone overflows a freshly recomputed budget cascades to the line
// splitter.
//
// The budget is recomputed at every seal: positions after the first have a
// smaller allotment, and reusing a stale budget would let a later chunk
// silently exceed it.
func (c *Chunker) splitBucket(bucket types.ModuleBucket, startIndex int) ([]*types.Chunk, []types.OverflowDiagnostic, error) {
	var (
		out       []*types.Chunk
		diags     []types.OverflowDiagnostic
		acc       accumulator
		accFences int
	)

	sealAcc := func() {
		chunk := acc.seal(startIndex+len(out), types.StrategyModuleBased)
		chunk.Content = balanceFences(chunk.Content)
		out = append(out, chunk)
		accFences = 0
	}

	// fencePad is the headroom a candidate chunk needs for the closing
	// fence the balancer would append to an odd fence count
	fencePad := func(fences int) int {
		if fences%2 != 0 {
			return fenceReserve
		}
		return 0
	}

	for _, f := range bucket.Files {
		fences := countFences(f.Content)

		if acc.size+len(f.Content)+fencePad(accFences+fences) <= c.limits.BudgetForPosition(startIndex+len(out)) {
			acc.addFile(bucket.Module, f)
			accFences += fences
			continue
		}

		if !acc.isEmpty() {
			sealAcc()
		}

		if len(f.Content)+fencePad(fences) <= c.limits.BudgetForPosition(startIndex+len(out)) {
			acc.addFile(bucket.Module, f)
			accFences = fences
			continue
		}

		lineChunks, lineDiags, err := c.splitFile(bucket.Module, f, startIndex+len(out))
		if err != nil {
			return nil, nil, err
		}
		out = append(out, lineChunks...)
		diags = append(diags, lineDiags...)
	}

	if !acc.isEmpty() {
		sealAcc()
	}

	return out, diags, nil
}
