package chunker

import "strings"

// fenceMarker is a markdown code-block delimiter line
const fenceMarker = "```"

// fenceReserve is the room a splitter must leave under its budget when the
// sealed content would hold an odd fence count, so the closing fence line
// appended by balanceFences cannot push the chunk over budget.
const fenceReserve = len(fenceMarker) + 1

// countFences counts the lines that are exactly a fence marker
func countFences(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimRight(line, "\r") == fenceMarker {
			count++
		}
	}
	return count
}

// balanceFences appends a closing fence line when the content holds an odd
// number of fence markers, so a fragment cut mid-code-block still renders
// as a closed block on its own. Idempotent.
func balanceFences(content string) string {
	if countFences(content)%2 == 0 {
		return content
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + fenceMarker + "\n"
}
