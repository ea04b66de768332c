package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/grid"
)

type countingReporter struct {
	total, updates int
	finished       bool
}

func (r *countingReporter) Start(total int)    { r.total = total }
func (r *countingReporter) Update(int, string) { r.updates++ }
func (r *countingReporter) Finish()            { r.finished = true }

func TestExport(t *testing.T) {
	reg, err := content.Default()
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "site")

	rep := &countingReporter{}
	e := NewExporter(reg, grid.DefaultTiles(), out, "monokai")
	e.Reporter = rep
	e.WriteMarkdown = true

	n, err := e.Export()
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, 9, rep.total)
	assert.Equal(t, 9, rep.updates)
	assert.True(t, rep.finished)

	for _, key := range reg.Keys() {
		assert.FileExists(t, filepath.Join(out, key+".html"))
		assert.FileExists(t, filepath.Join(out, key+".md"))
	}
	assert.FileExists(t, filepath.Join(out, "hub.css"))

	guide, err := os.ReadFile(filepath.Join(out, "guide.html"))
	require.NoError(t, err)
	page := string(guide)
	assert.Contains(t, page, "<title>Getting Started · GitMesh Docs</title>")
	assert.Contains(t, page, "<blockquote>")
	assert.Contains(t, page, `id="installation"`)
	assert.Contains(t, page, `class="tab active" href="guide.html"`)
	assert.Contains(t, page, "Install via npm")

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="guide.html"`)
	assert.Contains(t, string(index), `class="export-tile disabled"`)
	assert.Equal(t, 8, strings.Count(string(index), `<a class="export-tile"`))
}

func TestExportSearchIndex(t *testing.T) {
	reg, err := content.Default()
	require.NoError(t, err)
	out := t.TempDir()

	_, err = NewExporter(reg, nil, out, "").Export()
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "search-index.json"))
	require.NoError(t, err)
	var entries []SearchEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.NotEmpty(t, entries)

	first := entries[0]
	assert.Equal(t, "guide", first.Section)
	assert.Equal(t, "overview", first.Tab)
	assert.Equal(t, "Getting Started", first.Title)
	assert.True(t, strings.HasPrefix(first.Summary, "Welcome to GitMesh!"))
	assert.Equal(t, "guide.html", first.Path)
}

func TestBuildSearchIndexTabs(t *testing.T) {
	reg, err := content.Default()
	require.NoError(t, err)

	var install *SearchEntry
	for _, e := range BuildSearchIndex(reg) {
		if e.Section == "guide" && e.Tab == "installation" {
			install = &e
		}
		assert.LessOrEqual(t, len(e.Content), maxSearchContent)
	}
	require.NotNil(t, install)
	assert.Equal(t, "Getting Started · Installation", install.Title)
	assert.Equal(t, "Installation Methods", install.Summary)
	assert.Contains(t, install.Content, "Install via npm")
}

func TestSearchTextTruncatesOnRuneBoundary(t *testing.T) {
	long := content.NewMap(content.Entry{
		Key:   "notes",
		Value: content.Leaf{Text: strings.Repeat("a", maxSearchContent-1) + "•tail"},
	})

	text := searchText(long)
	assert.True(t, utf8.ValidString(text))
	assert.LessOrEqual(t, len(text), maxSearchContent)
	assert.Equal(t, strings.Repeat("a", maxSearchContent-1), text)

	assert.Equal(t, "short • text", searchText(content.Leaf{Text: "short  •\n text"}))
}

func TestExportEmptyRegistry(t *testing.T) {
	_, err := NewExporter(nil, nil, t.TempDir(), "").Export()
	assert.Error(t, err)
}
