package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoFiles(t *testing.T) {
	doc := "## File: a.go\npackage a\n\n## File: b.go\npackage b\n"

	records := Parse(doc)
	require.Len(t, records, 2)

	assert.Equal(t, "a.go", records[0].Path)
	assert.Equal(t, "## File: a.go", records[0].Header)
	assert.Equal(t, "## File: a.go\npackage a\n\n", records[0].Content)

	assert.Equal(t, "b.go", records[1].Path)
	assert.Equal(t, "## File: b.go\npackage b\n", records[1].Content)

	// Concatenating records in order reconstructs the parsed document
	assert.Equal(t, doc, records[0].Content+records[1].Content)
}

func TestParse_HeaderVariants(t *testing.T) {
	tests := []struct {
		line string
		path string
	}{
		{"# File: main.go", "main.go"},
		{"###### File: deep.go", "deep.go"},
		{"##File:nospace.go", "nospace.go"},
		{"##   file:   lower.go", "lower.go"},
		{"### FILE: upper.go", "upper.go"},
		{"## File: dir/sub/name with spaces.txt", "dir/sub/name with spaces.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			records := Parse(tt.line + "\ncontent\n")
			require.Len(t, records, 1)
			assert.Equal(t, tt.path, records[0].Path)
		})
	}
}

func TestParse_NonHeaders(t *testing.T) {
	lines := []string{
		"####### File: seven.go", // seven '#' is not a heading
		"File: bare.go",          // no leading '#'
		"## Files: plural.go",
		"## File no colon",
		"  ## File: indented.go", // headers start at column 0
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			assert.False(t, IsHeader(line))
			assert.Empty(t, Parse(line+"\ncontent\n"))
		})
	}
}

func TestParse_PreambleDiscarded(t *testing.T) {
	doc := "intro prose\nmore prose\n## File: a.go\npackage a\n"

	records := Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "a.go", records[0].Path)
	assert.NotContains(t, records[0].Content, "intro prose")
}

func TestParse_NoHeaders(t *testing.T) {
	assert.Empty(t, Parse("just some text\nwith no file markers\n"))
	assert.Empty(t, Parse(""))
}

func TestParse_HeaderOnlyFile(t *testing.T) {
	records := Parse("## File: empty.go\n## File: next.go\nbody\n")
	require.Len(t, records, 2)
	assert.Equal(t, "## File: empty.go\n", records[0].Content)
	assert.Equal(t, "empty.go", records[0].Path)
}

func TestParse_UnicodeContent(t *testing.T) {
	doc := "## File: i18n.txt\nこんにちは世界\némoji 🎉 line\n"
	records := Parse(doc)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Content, "こんにちは世界")
}

func TestGroup_FirstSeenOrder(t *testing.T) {
	doc := strings.Join([]string{
		"## File: pkg/a/one.go", "1",
		"## File: pkg/b/two.go", "2",
		"## File: pkg/a/three.go", "3",
		"## File: top.go", "4",
	}, "\n") + "\n"

	buckets := Group(Parse(doc))
	require.Len(t, buckets, 3)

	assert.Equal(t, "pkg/a", buckets[0].Module)
	assert.Equal(t, "pkg/b", buckets[1].Module)
	assert.Equal(t, RootModule, buckets[2].Module)

	// pkg/a keeps both of its files in document order
	require.Len(t, buckets[0].Files, 2)
	assert.Equal(t, "pkg/a/one.go", buckets[0].Files[0].Path)
	assert.Equal(t, "pkg/a/three.go", buckets[0].Files[1].Path)
}

func TestGroup_Empty(t *testing.T) {
	assert.Nil(t, Group(nil))
}

func TestModuleKey(t *testing.T) {
	assert.Equal(t, "internal/auth", ModuleKey("internal/auth/login.go"))
	assert.Equal(t, ".", ModuleKey("main.go"))
	assert.Equal(t, "src/win", ModuleKey(`src\win\app.cs`))
}

func TestBucketSizeAndContent(t *testing.T) {
	doc := "## File: m/a.go\naaa\n## File: m/b.go\nbbb\n"
	buckets := Group(Parse(doc))
	require.Len(t, buckets, 1)

	assert.Equal(t, len(doc), buckets[0].Size())
	assert.Equal(t, doc, buckets[0].Content())
}
