package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_NormalizesToNFC(t *testing.T) {
	dir := t.TempDir()
	// "e" followed by a combining acute accent.
	p := writeFile(t, dir, "cafe.txt", "cafe\u0301 au lait")

	doc, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9 au lait", doc.Content)
	assert.Equal(t, p, doc.Path)
	assert.Len(t, doc.ID, 16)
	assert.Equal(t, hashString(p), doc.ID)
}

func TestLoad_Unsupported(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "notes.docx", "x")
	_, err := Load(p)
	assert.ErrorContains(t, err, "unsupported")

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestLoadAll_GlobsDedupAndOrder(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.md", "# B")
	a := writeFile(t, dir, "a.txt", "A")
	writeFile(t, dir, "skip.csv", "1,2")

	docs, err := LoadAll([]string{filepath.Join(dir, "*"), a})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, a, docs[0].Path)
	assert.Equal(t, b, docs[1].Path)
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
}

func TestLoadAll_NothingFound(t *testing.T) {
	_, err := LoadAll([]string{filepath.Join(t.TempDir(), "*.txt")})
	assert.Error(t, err)
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "  first   line \n\n\t second\tline  \n   \n"
	assert.Equal(t, "first line\nsecond line", normalizeWhitespace(in))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("x.PDF"))
	assert.True(t, Supported("x.md"))
	assert.False(t, Supported("x.doc"))
}
