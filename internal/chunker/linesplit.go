package chunker

import (
	"fmt"
	"strings"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// splitFile splits one oversized file strictly on line boundaries, starting
// at the given chunk position. The file's header line is repeated atop every
// fragment so each remains self-describing, and every sealed fragment gets
// its fences balanced.
//
// A single line that alone exceeds a freshly started fragment's entire
// budget is emitted whole: lines are never split mid-line. Under
// OverflowAllow the fragment overflows and a diagnostic is recorded; under
// OverflowReject chunking fails.
func (c *Chunker) splitFile(module string, f types.FileRecord, startIndex int) ([]*types.Chunk, []types.OverflowDiagnostic, error) {
	lines := strings.Split(strings.TrimSuffix(f.Content, "\n"), "\n")
	header := lines[0]
	body := lines[1:]

	var (
		out   []*types.Chunk
		diags []types.OverflowDiagnostic
	)

	frag := []string{header}
	fragSize := len(header) + 1

	seal := func(overflow bool) {
		out = append(out, &types.Chunk{
			Content:  balanceFences(strings.Join(frag, "\n") + "\n"),
			Index:    startIndex + len(out),
			Strategy: types.StrategyFileSplit,
			Modules:  []string{module},
			Files:    []string{f.Path},
			Overflow: overflow,
		})
		frag = []string{header}
		fragSize = len(header) + 1
	}

	for _, line := range body {
		need := len(line) + 1

		if fragSize+need > c.limits.BudgetForPosition(startIndex+len(out))-fenceReserve {
			if len(frag) > 1 {
				seal(false)
			}
			// Fresh fragment under a freshly recomputed budget
			if budget := c.limits.BudgetForPosition(startIndex + len(out)); fragSize+need > budget-fenceReserve {
				// Blame whichever component is oversized; the repeated
				// header can exhaust the budget before the body line does
				lineBytes := len(line)
				if len(header) > lineBytes {
					lineBytes = len(header)
				}
				if c.limits.Policy() == types.OverflowReject {
					return nil, nil, fmt.Errorf("%w: %s has a %d-byte line against a budget of %d",
						types.ErrLineOverflow, f.Path, lineBytes, budget)
				}
				diags = append(diags, types.OverflowDiagnostic{
					ChunkIndex: startIndex + len(out),
					Path:       f.Path,
					LineBytes:  lineBytes,
					Budget:     budget,
				})
				frag = append(frag, line)
				fragSize += need
				seal(true)
				continue
			}
		}

		frag = append(frag, line)
		fragSize += need
	}

	if len(frag) > 1 {
		seal(false)
	} else if len(out) == 0 {
		// A file that is nothing but its header line still belongs to the
		// partition. It only reaches the line splitter oversized, so flag
		// it rather than dropping it.
		budget := c.limits.BudgetForPosition(startIndex)
		if fragSize > budget-fenceReserve {
			if c.limits.Policy() == types.OverflowReject {
				return nil, nil, fmt.Errorf("%w: %s has a %d-byte line against a budget of %d",
					types.ErrLineOverflow, f.Path, len(header), budget)
			}
			diags = append(diags, types.OverflowDiagnostic{
				ChunkIndex: startIndex,
				Path:       f.Path,
				LineBytes:  len(header),
				Budget:     budget,
			})
			seal(true)
		} else {
			seal(false)
		}
	}

	return out, diags, nil
}
