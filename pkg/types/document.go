package types

// FileRecord is one file block extracted from the concatenated document.
// Content includes the header line, so concatenating records in order
// reconstructs the parsed portion of the document.
type FileRecord struct {
	Path    string // Unique, order-significant
	Header  string // The file-boundary line as it appeared
	Content string // Full block content, header included
}

// ModuleBucket groups file records sharing a directory-derived module key.
// Bucket order follows the first occurrence of any member file; every record
// belongs to exactly one bucket.
type ModuleBucket struct {
	Module string
	Files  []FileRecord
}

// Size returns the total character count of all files in the bucket
func (b ModuleBucket) Size() int {
	total := 0
	for _, f := range b.Files {
		total += len(f.Content)
	}
	return total
}

// Content returns the bucket's files concatenated in document order
func (b ModuleBucket) Content() string {
	if len(b.Files) == 1 {
		return b.Files[0].Content
	}
	out := make([]byte, 0, b.Size())
	for _, f := range b.Files {
		out = append(out, f.Content...)
	}
	return string(out)
}
