package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitmesh/docs-hub/internal/clipboard"
	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

// Adaptive colors for light and dark terminals.
var (
	colorBlue  = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	colorGreen = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	colorGray  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorLine  = lipgloss.AdaptiveColor{Light: "#d4d4d8", Dark: "#3f3f46"}
)

var (
	styleBrand = lipgloss.NewStyle().Bold(true)

	styleAccent = lipgloss.NewStyle().Foreground(colorBlue)

	styleSubtle = lipgloss.NewStyle().Foreground(colorGray)

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	styleTab = lipgloss.NewStyle().Padding(0, 1).Foreground(colorGray)

	styleTabActive = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(colorBlue).
			Underline(true)

	styleHeading = lipgloss.NewStyle().Bold(true)

	styleBadge = lipgloss.NewStyle().Padding(0, 1).
			Foreground(colorBlue).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorBlue)

	styleCode = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorLine).
			Padding(0, 1)

	styleCodeFocused = styleCode.BorderForeground(colorBlue)
)

// Terminal stand-ins for the hub's icon set.
var glyphs = map[string]string{
	"book":           "▤",
	"lightbulb":      "✧",
	"code":           "‹›",
	"file-text":      "≡",
	"layers":         "◫",
	"settings":       "⚙",
	"help-circle":    "?",
	"network":        "⌘",
	"shield":         "⛨",
	"zap":            "ϟ",
	"alert-triangle": "⚠",
	"chevron-right":  "›",
	"download":       "↓",
	"database":       "⛁",
	"info":           "ⓘ",
}

const (
	searchGlyph = "⌕"
	backGlyph   = "←"
	copyGlyph   = "⧉"
	checkGlyph  = "✓"
)

func glyph[T ~string](name T) string {
	if g, ok := glyphs[string(name)]; ok {
		return g
	}
	return glyphs[string(viewer.IconChevron)]
}

// View renders the current screen.
func (m *Model) View() string {
	switch m.mode {
	case ModeDocs, ModeSearch:
		return m.docsView()
	case ModeNotFound:
		return m.notFoundView()
	default:
		return m.gridView()
	}
}

func (m *Model) gridView() string {
	var b strings.Builder

	fit := lipgloss.NewStyle().MaxWidth(m.width)
	b.WriteString(fit.Render(styleBrand.Render(content.HubName+" Docs") + "  " +
		styleSubtle.Render("★ "+content.RepoStars+"  "+content.RepoURL)))
	b.WriteByte('\n')
	b.WriteString(fit.Render(styleSubtle.Render(content.Tagline)))
	b.WriteString("\n\n")

	g := m.geometry()
	rows := make([]string, 0, grid.Tracks*2)
	for r := 0; r < grid.Tracks; r++ {
		if r > 0 && g.vgap > 0 {
			rows = append(rows, strings.TrimSuffix(strings.Repeat("\n", g.vgap), "\n"))
		}
		cells := make([]string, 0, grid.Tracks*2)
		for c := 0; c < grid.Tracks; c++ {
			if c > 0 && g.hgap > 0 {
				cells = append(cells, blank(g.hgap, g.rows[r]))
			}
			t, ok := m.layout.TileAt(grid.Cell{Row: r, Col: c})
			if !ok {
				cells = append(cells, blank(g.cols[c], g.rows[r]))
				continue
			}
			cells = append(cells, m.tileView(t, g.cols[c], g.rows[r]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteByte('\n')
	b.WriteString(m.footer(m.gridHelp()))
	return b.String()
}

// tileView draws one tile in a w by h box. The hovered tile shows its
// description and section badge; the others only their title.
func (m *Model) tileView(t grid.Tile, w, h int) string {
	if w < 4 || h < 3 {
		return blank(w, h)
	}
	hovered := m.layout.Hovered(t)
	tiles := m.layout.Tiles()
	focused := m.focus >= 0 && m.focus < len(tiles) && tiles[m.focus].ID == t.ID

	border := lipgloss.RoundedBorder()
	if t.Params.BorderThickness > 0 {
		border = lipgloss.ThickBorder()
	}
	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(colorLine).
		Width(w-2).
		Height(h-2).
		MaxHeight(h).
		Padding(0, 1)
	if hovered || focused {
		style = style.BorderForeground(colorBlue)
	}

	inner := w - 4
	lines := []string{styleBrand.Render(truncate(fmt.Sprintf("%d %s", t.ID, t.Title), inner))}
	if hovered && h > 4 {
		lines = append(lines,
			styleSubtle.Width(inner).Render(t.Description),
			styleBadge.Render(t.Section))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) gridHelp() string {
	help := "←↑↓→/mouse hover · enter/click open · q quit"
	if m.opts.Dev && !m.opts.CleanInterface {
		help += " · +/- hover size · [/] gap · u log values"
	}
	return help
}

func (m *Model) docsView() string {
	page := m.viewer.Page()
	var b strings.Builder

	fit := lipgloss.NewStyle().MaxWidth(m.width)
	b.WriteString(fit.Render(
		styleSubtle.Render(backGlyph+" Back to Hub") + "  │  " +
			styleAccent.Render(glyph(page.Icon)) + " " + styleHeading.Render(page.Title) + "  " +
			styleSubtle.Render(content.HubTitle)))
	b.WriteByte('\n')

	filter := ""
	for _, f := range viewer.Filters {
		if f.Value == page.Filter {
			filter = f.Label
		}
	}
	b.WriteString(fit.Render(m.search.View() + "   " + styleSubtle.Render("Filter: ") + filter))
	b.WriteByte('\n')

	tabs := make([]string, 0, len(page.Tabs))
	for _, t := range page.Tabs {
		label := glyph(t.Icon) + " " + t.Label
		if t.Key == page.ActiveTab {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTab.Render(label))
		}
	}
	b.WriteString(fit.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
	b.WriteString("\n\n")

	b.WriteString(m.body.View())
	b.WriteByte('\n')
	b.WriteString(m.footer("tab switch · ↑↓ select · c copy · / search · f filter · esc back"))
	return b.String()
}

func (m *Model) notFoundView() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorLine).
		Padding(1, 4).
		Render(styleHeading.Render("Section not found") + "\n\n" +
			styleAccent.Render(backGlyph+" Back to Documentation Hub"))
	return lipgloss.Place(m.width, max(m.height-footerLines, 1), lipgloss.Center, lipgloss.Center, box) +
		"\n" + m.footer("esc back · q quit")
}

func (m *Model) footer(help string) string {
	line := styleSubtle.Render(help)
	if m.statusMsg != "" {
		line = styleAccent.Render(m.statusMsg) + "  " + line
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// refreshBody re-renders the docs body into the viewport and scrolls the
// focused code block into view.
func (m *Model) refreshBody() {
	if m.viewer == nil || !m.viewer.Found() {
		return
	}
	text, lines := m.docsContent()
	m.blockLines = lines
	m.body.SetContent(text)

	if m.block < len(lines) {
		top := lines[m.block]
		switch {
		case top < m.body.YOffset:
			m.body.SetYOffset(top)
		case top >= m.body.YOffset+m.body.Height:
			m.body.SetYOffset(top - m.body.Height/2)
		}
	}
}

// docsContent renders the active tab. It also returns the first line of each
// code block, in render order.
func (m *Model) docsContent() (string, []int) {
	page := m.viewer.Page()
	width := max(m.width-2, 20)
	var b strings.Builder

	if page.Overview != nil {
		b.WriteString(styleHeading.Render("Overview"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(page.Overview.Text))
		b.WriteByte('\n')
		if page.Overview.HasFiles() {
			b.WriteString("\n")
			b.WriteString(styleHeading.Render(glyph(viewer.IconDatabase) + " File Structure Reference"))
			b.WriteString("\n")
			b.WriteString(styleSubtle.Render("Project Structure"))
			b.WriteString("\n\n")
			for _, f := range page.Overview.Files {
				b.WriteString(styleAccent.Render(f.Path) + "  " + styleSubtle.Render(f.Description) + "\n")
				for i, c := range f.Children {
					branch := "├─"
					if i == len(f.Children)-1 {
						branch = "└─"
					}
					b.WriteString("  " + branch + " " + c.Path + "  " + styleSubtle.Render(c.Description) + "\n")
				}
			}
		}
		return b.String(), nil
	}

	b.WriteString(styleHeading.Render(page.Heading))
	b.WriteByte('\n')
	if page.TabTitle != "" {
		b.WriteString(styleSubtle.Render(page.TabTitle))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	r := &blockRenderer{m: m, b: &b, width: width}
	r.render(page.Body, 0)

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("Last updated: " + page.LastUpdated))
	return b.String(), r.lines
}

type blockRenderer struct {
	m     *Model
	b     *strings.Builder
	width int
	n     int
	lines []int
}

func (r *blockRenderer) render(blk viewer.Block, indent int) {
	pad := strings.Repeat("  ", indent)
	switch v := blk.(type) {
	case *viewer.Stack:
		for _, g := range v.Groups {
			r.b.WriteString(pad + styleAccent.Render(glyph(g.Icon)) + " " + styleHeading.Render(viewer.Capitalize(g.Heading)) + "\n")
			r.render(g.Body, indent+1)
		}
	case *viewer.CodeBlock:
		r.lines = append(r.lines, strings.Count(r.b.String(), "\n"))
		r.b.WriteString(indentLines(r.codeBlock(v, r.n == r.m.block, r.width-len(pad)), pad))
		r.b.WriteByte('\n')
		r.n++
	case *viewer.TextBlock:
		r.b.WriteString(pad + v.Text + "\n")
	}
}

func (r *blockRenderer) codeBlock(c *viewer.CodeBlock, focused bool, width int) string {
	action := styleSubtle.Render(copyGlyph + " Copy")
	if r.m.copier.Active(clipboard.Token(c.ID)) {
		action = styleSuccess.Render(checkGlyph + " Copied!")
	}
	header := styleSubtle.Render(c.Label) + "  " + action

	style := styleCode
	if focused {
		style = styleCodeFocused
	}
	return style.Width(max(width-2, 10)).Render(header + "\n" + c.Text)
}

func indentLines(s, pad string) string {
	if pad == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

func blank(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render("")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
