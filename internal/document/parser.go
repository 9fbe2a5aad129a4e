package document

import (
	"regexp"
	"strings"

	"github.com/dshills/docchunk-mcp/pkg/types"
)

// headerPattern matches a file-boundary line: one to six leading '#',
// optional whitespace, the literal word "File:" (case-insensitive),
// optional whitespace, then the path to end of line.
var headerPattern = regexp.MustCompile(`^#{1,6}[ \t]*(?i:file):[ \t]*(.+?)[ \t]*$`)

// Parse scans the concatenated document and groups contiguous lines into
// ordered file records. Content from a header line up to the next header
// belongs to that file, header included. Lines before the first header are
// discarded. Parsing is total: any input yields a (possibly empty) record
// list, never an error.
func Parse(doc string) []types.FileRecord {
	if doc == "" {
		return nil
	}

	lines := strings.Split(doc, "\n")
	records := make([]types.FileRecord, 0)

	var current *types.FileRecord
	var block []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(block, "\n") + "\n"
		records = append(records, *current)
		current = nil
		block = nil
	}

	for _, line := range lines {
		if m := headerPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = &types.FileRecord{Path: m[1], Header: line}
			block = []string{line}
			continue
		}
		if current != nil {
			block = append(block, line)
		}
	}
	// Splitting a newline-terminated document leaves one empty trailing
	// element; drop it so the record reproduces the block verbatim.
	if current != nil && len(block) > 1 && block[len(block)-1] == "" {
		block = block[:len(block)-1]
	}
	flush()

	return records
}

// IsHeader reports whether a line is a file-boundary header
func IsHeader(line string) bool {
	return headerPattern.MatchString(line)
}
