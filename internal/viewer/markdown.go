package viewer

import (
	"fmt"
	"strings"

	"github.com/gitmesh/docs-hub/internal/content"
)

// Markdown renders a whole section as a Markdown document: the overview as a
// quote, the file structure as a nested list and every other tab as a level
// two heading followed by its rendered groups.
func Markdown(sec *content.Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sec.Title)
	writeOverview(&b, sec)
	for _, k := range sec.Content.Keys() {
		if k == overviewTab {
			continue
		}
		n, _ := sec.Content.Get(k)
		b.WriteString(TabMarkdown(sec, k, n))
	}
	return b.String()
}

// TabMarkdown renders one tab of sec as Markdown.
func TabMarkdown(sec *content.Section, key string, n content.Node) string {
	var b strings.Builder
	if key == overviewTab {
		writeOverview(&b, sec)
		return b.String()
	}
	fmt.Fprintf(&b, "## %s\n\n", Heading(key))
	if m, ok := n.(*content.Map); ok {
		if t, ok := m.Get(content.KeyTitle); ok {
			fmt.Fprintf(&b, "_%s_\n\n", content.Text(t))
		}
	}
	writeBlock(&b, Render(n, sec.Key, key))
	return b.String()
}

func writeOverview(b *strings.Builder, sec *content.Section) {
	fmt.Fprintf(b, "> %s\n\n", sec.Overview())
	files, ok := sec.FileStructure()
	if !ok || len(files) == 0 {
		return
	}
	b.WriteString("### File Structure Reference\n\n")
	for _, f := range files {
		fmt.Fprintf(b, "- `%s` %s\n", f.Path, f.Description)
		for _, c := range f.Children {
			fmt.Fprintf(b, "  - `%s` %s\n", c.Path, c.Description)
		}
	}
	b.WriteString("\n")
}

func writeBlock(b *strings.Builder, blk Block) {
	switch v := blk.(type) {
	case *CodeBlock:
		fence := codeFence(v.Text)
		fmt.Fprintf(b, "%s%s\n%s\n%s\n\n", fence, fenceLanguage(v), v.Text, fence)
	case *TextBlock:
		fmt.Fprintf(b, "%s\n\n", v.Text)
	case *Stack:
		for _, g := range v.Groups {
			level := g.Depth + 3
			if level > 6 {
				fmt.Fprintf(b, "**%s**\n\n", Heading(g.Key))
			} else {
				fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), Heading(g.Key))
			}
			writeBlock(b, g.Body)
		}
	}
}

// codeFence returns a backtick fence longer than any backtick run in text.
func codeFence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

func fenceLanguage(c *CodeBlock) string {
	trimmed := strings.TrimSpace(c.Text)
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return "json"
	case strings.HasPrefix(trimmed, "[") && strings.Contains(trimmed, "="):
		return "toml"
	case c.Label == LabelTerminal:
		return "bash"
	}
	return "text"
}
