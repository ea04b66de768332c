package viewer

import (
	"strings"
	"unicode"

	"github.com/gitmesh/docs-hub/internal/content"
)

// Code block header labels.
const (
	LabelTerminal      = "Terminal"
	LabelConfiguration = "Configuration"
)

// Block is one node of a rendered content tree: a *CodeBlock, a *TextBlock or
// a *Stack of groups.
type Block interface {
	block()
}

// CodeBlock shows a string leaf verbatim with a copy control. ID is the
// slash-joined content path of the leaf, stable across renders, and doubles as
// the copy feedback token.
type CodeBlock struct {
	ID    string
	Label string
	Text  string
}

// TextBlock shows a non-string scalar as plain text.
type TextBlock struct {
	Text string
}

// Group is one labelled entry of a mapping.
type Group struct {
	Key     string
	Heading string
	Icon    Icon
	Depth   int
	Body    Block
}

// Stack holds the groups of a rendered mapping in declaration order.
type Stack struct {
	Depth  int
	Groups []Group
}

func (*CodeBlock) block() {}
func (*TextBlock) block() {}
func (*Stack) block()     {}

// Render turns a content node into blocks. path is the location of n in the
// registry ("guide", "installation", ...) and seeds the code block IDs.
func Render(n content.Node, path ...string) Block {
	return render(n, path, 0)
}

func render(n content.Node, path []string, depth int) Block {
	switch v := n.(type) {
	case content.Leaf:
		return &CodeBlock{ID: content.JoinPath(path...), Label: CodeLabel(v.Text), Text: v.Text}
	case *content.Map:
		st := &Stack{Depth: depth}
		for _, e := range v.Entries() {
			if e.Key == content.KeyTitle {
				continue
			}
			child := make([]string, len(path)+1)
			copy(child, path)
			child[len(path)] = e.Key
			st.Groups = append(st.Groups, Group{
				Key:     e.Key,
				Heading: Humanize(e.Key),
				Icon:    GroupIcon(e.Key),
				Depth:   depth,
				Body:    render(e.Value, child, depth+1),
			})
		}
		return st
	default:
		return &TextBlock{Text: content.Text(n)}
	}
}

// CodeLabel picks the header shown above a code block.
func CodeLabel(text string) string {
	if strings.Contains(text, "#") || strings.Contains(text, "gitmesh") || strings.Contains(text, "npm") {
		return LabelTerminal
	}
	return LabelConfiguration
}

// Humanize splits a camelCase key into words: "quickStart" becomes
// "quick Start". Case is otherwise preserved.
func Humanize(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Capitalize upper-cases the first letter of every space separated word.
func Capitalize(s string) string {
	out := []rune(s)
	start := true
	for i, r := range out {
		switch {
		case unicode.IsSpace(r):
			start = true
		case start && unicode.IsLetter(r):
			out[i] = unicode.ToUpper(r)
			start = false
		case start && unicode.IsDigit(r):
			start = false
		}
	}
	return string(out)
}

// Heading returns the display heading for a content key.
func Heading(key string) string {
	return Capitalize(Humanize(key))
}

// Walk calls fn for every code block under b, in render order.
func Walk(b Block, fn func(*CodeBlock)) {
	switch v := b.(type) {
	case *CodeBlock:
		fn(v)
	case *Stack:
		for _, g := range v.Groups {
			Walk(g.Body, fn)
		}
	}
}

// CodeBlocks collects the code blocks under b in render order.
func CodeBlocks(b Block) []*CodeBlock {
	var out []*CodeBlock
	Walk(b, func(c *CodeBlock) { out = append(out, c) })
	return out
}
