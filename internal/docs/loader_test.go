package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "plain text body")

	docs, err := NewLoader(nil).Load([]string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, path, docs[0].Name)
	assert.Equal(t, "plain text body", docs[0].Content)
}

func TestLoad_DirectorySkipsDotfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "first")
	writeFile(t, dir, ".hidden", "ignored")
	writeFile(t, dir, ".git/config", "ignored")
	writeFile(t, dir, "sub/b.txt", "second")

	docs, err := NewLoader(nil).Load([]string{dir})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0].Content)
	assert.Equal(t, "second", docs[1].Content)
}

func TestLoad_MarkdownFlattened(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.md", "# Quarterly Report\n\nRevenue **grew** 12%.\n")

	docs, err := NewLoader(nil).Load([]string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Quarterly Report\nRevenue grew 12%.", docs[0].Content)
	assert.NotContains(t, docs[0].Content, "#")
	assert.NotContains(t, docs[0].Content, "**")
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := NewLoader(nil).Load([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestFlattenMarkdown(t *testing.T) {
	source := []byte(`# Title

First paragraph with *emphasis* split
over two lines.

## Section

` + "```go\nfmt.Println(\"hi\")\n```" + `

Second paragraph.`)

	title, plain := flattenMarkdown(source)
	assert.Equal(t, "Title", title)
	assert.Equal(t, "Title\nFirst paragraph with emphasis split over two lines.\nSection\nfmt.Println(\"hi\")\nSecond paragraph.", plain)
}

func TestFlattenMarkdown_NoHeading(t *testing.T) {
	title, plain := flattenMarkdown([]byte("just a paragraph"))
	assert.Empty(t, title)
	assert.Equal(t, "just a paragraph", plain)
}
