package site

import (
	"encoding/json"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

const maxSearchContent = 2000

// SearchEntry is one tab of one section in the exported search index.
type SearchEntry struct {
	Path    string `json:"path"`
	Section string `json:"section"`
	Tab     string `json:"tab"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex returns one entry per tab of every section in reg, in
// declaration order.
func BuildSearchIndex(reg *content.Registry) []SearchEntry {
	var entries []SearchEntry
	for _, sec := range reg.Sections() {
		for _, key := range sec.Content.Keys() {
			n, _ := sec.Content.Get(key)
			entry := SearchEntry{
				Path:    sec.Key + ".html",
				Section: sec.Key,
				Tab:     key,
				Title:   sec.Title + " · " + viewer.Heading(key),
			}
			if key == content.KeyOverview {
				entry.Title = sec.Title
				entry.Summary = sec.Overview()
			} else if m, ok := n.(*content.Map); ok {
				if t, ok := m.Get(content.KeyTitle); ok {
					entry.Summary = content.Text(t)
				}
			}
			entry.Content = searchText(n)
			entries = append(entries, entry)
		}
	}
	return entries
}

// searchText flattens every scalar under n into one line.
func searchText(n content.Node) string {
	var parts []string
	content.Walk(n, func(_ []string, v content.Node) error {
		if s := strings.Join(strings.Fields(content.Text(v)), " "); s != "" {
			parts = append(parts, s)
		}
		return nil
	})
	text := strings.Join(parts, " ")
	if len(text) > maxSearchContent {
		cut := maxSearchContent
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
