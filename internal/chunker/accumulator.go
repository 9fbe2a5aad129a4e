package chunker

import (
	"strings"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// accumulator collects the content and metadata of the chunk under
// construction. Sealing joins the parts, hands off the metadata slices,
// and resets the accumulator for the next position.
type accumulator struct {
	parts   []string
	modules []string
	files   []string
	size    int
}

func (a *accumulator) isEmpty() bool {
	return len(a.parts) == 0
}

// addBucket appends a whole module bucket
func (a *accumulator) addBucket(bucket types.ModuleBucket) {
	a.addModule(bucket.Module)
	for _, f := range bucket.Files {
		a.parts = append(a.parts, f.Content)
		a.files = append(a.files, f.Path)
		a.size += len(f.Content)
	}
}

// addFile appends a single file record under its module key
func (a *accumulator) addFile(module string, f types.FileRecord) {
	a.addModule(module)
	a.parts = append(a.parts, f.Content)
	a.files = append(a.files, f.Path)
	a.size += len(f.Content)
}

// addModule records a module key once, preserving arrival order
func (a *accumulator) addModule(module string) {
	if n := len(a.modules); n == 0 || a.modules[n-1] != module {
		a.modules = append(a.modules, module)
	}
}

// seal produces the chunk at the given position and resets the accumulator
func (a *accumulator) seal(index int, strategy types.Strategy) *types.Chunk {
	chunk := &types.Chunk{
		Content:  strings.Join(a.parts, ""),
		Index:    index,
		Strategy: strategy,
		Modules:  a.modules,
		Files:    a.files,
	}
	*a = accumulator{}
	return chunk
}
