package document

import (
	"path"
	"strings"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// RootModule is the bucket key for files without a directory component
const RootModule = "."

// ModuleKey derives the module bucket key for a file path: its directory,
// slash-normalized. Files at the document root share the RootModule key.
func ModuleKey(filePath string) string {
	normalized := strings.ReplaceAll(filePath, `\`, "/")
	dir := path.Dir(normalized)
	if dir == "" {
		return RootModule
	}
	return dir
}

// Group buckets file records by module key, preserving the order in which
// each module first appears in the document. Every record lands in exactly
// one bucket; file order inside a bucket follows document order.
func Group(records []types.FileRecord) []types.ModuleBucket {
	if len(records) == 0 {
		return nil
	}

	// Bucket order must follow first occurrence, never map iteration order
	index := make(map[string]int, len(records))
	buckets := make([]types.ModuleBucket, 0)

	for _, rec := range records {
		key := ModuleKey(rec.Path)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, types.ModuleBucket{Module: key})
		}
		buckets[i].Files = append(buckets[i].Files, rec)
	}

	return buckets
}
