// Package document parses a concatenated source document into ordered file
// records and groups them into module buckets for packing.
//
// The input is one large string in which each file block is introduced by a
// markdown-style boundary header:
//
//	## File: internal/auth/login.go
//	package auth
//	...
//
// A header is any line with 1-6 leading '#', optional whitespace, the
// literal word "File:" (case-insensitive), and the path to end of line.
// No other structure is assumed; block bodies are opaque text.
//
// Parsing is total. Malformed input degrades rather than failing: lines
// before the first header are discarded, and a document with no headers at
// all yields an empty record list, which callers handle via the
// whole-document fast path.
package document
