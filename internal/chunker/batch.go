package chunker

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// ChunkAll chunks several independent documents concurrently and returns a
// result per document name. The chunker is pure and stateless, so parallel
// invocations need no coordination beyond collecting results.
func ChunkAll(ctx context.Context, docs map[string]string, limits types.Limits, workers int) (map[string]*types.ChunkResult, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	c := New(limits)
	results := make(map[string]*types.ChunkResult, len(docs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for name, doc := range docs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			result, err := c.Chunk(doc)
			if err != nil {
				return fmt.Errorf("chunk %s: %w", name, err)
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
