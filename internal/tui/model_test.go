package tui

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmesh/docs-hub/internal/clipboard"
	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

type testModel struct {
	*Model
	clip *clipboard.Memory
	logs *bytes.Buffer
}

// newTestModel builds a model over the default registry with an in-memory
// clipboard.
func newTestModel(t *testing.T, opts Options) *testModel {
	t.Helper()
	reg, err := content.Default()
	require.NoError(t, err)

	var logs bytes.Buffer
	clip := &clipboard.Memory{}
	opts.Clipboard = clip
	opts.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	m := New(reg, grid.DefaultTiles(), opts)
	t.Cleanup(m.Close)
	return &testModel{Model: m, clip: clip, logs: &logs}
}

func (tm *testModel) send(msg tea.Msg) tea.Cmd {
	_, cmd := tm.Update(msg)
	return cmd
}

func (tm *testModel) press(keys ...string) {
	for _, k := range keys {
		tm.send(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestNewShowsGrid(t *testing.T) {
	m := newTestModel(t, Options{})

	assert.Equal(t, ModeGrid, m.Mode())
	assert.Empty(t, m.Section())
	assert.Nil(t, m.Viewer())
	_, hovering := m.Layout().Hover()
	assert.False(t, hovering)

	view := m.View()
	assert.Contains(t, view, "GitMesh Docs")
	assert.Contains(t, view, "1 Getting Started")
	assert.Contains(t, view, "9 Troubleshooting")
	assert.NotContains(t, view, "+/- hover size")
}

func TestKeyboardHoverAndActivate(t *testing.T) {
	m := newTestModel(t, Options{})

	cmd := m.send(keyMsg("right"))
	assert.NotNil(t, cmd, "hover starts the animation")
	cell, ok := m.Layout().Hover()
	require.True(t, ok)
	assert.Equal(t, grid.Cell{Row: 0, Col: 1}, cell)
	assert.Equal(t, "3fr 6fr 3fr", grid.Template(m.Layout().ColTracks()))
	assert.Contains(t, m.View(), "Understanding")

	m.press("enter")
	assert.Equal(t, ModeDocs, m.Mode())
	assert.Equal(t, "concept", m.Section())
	assert.Equal(t, content.KeyOverview, m.Viewer().ActiveTab())

	m.press("esc")
	assert.Equal(t, ModeGrid, m.Mode())
	assert.Empty(t, m.Section())
	cell, ok = m.Layout().Hover()
	require.True(t, ok, "back leaves the grid as it was")
	assert.Equal(t, grid.Cell{Row: 0, Col: 1}, cell)
}

func TestNumberKeysFocusTiles(t *testing.T) {
	m := newTestModel(t, Options{})
	m.press("6")
	cell, ok := m.Layout().Hover()
	require.True(t, ok)
	assert.Equal(t, grid.Cell{Row: 1, Col: 2}, cell)

	m.press("down", "down")
	cell, _ = m.Layout().Hover()
	assert.Equal(t, grid.Cell{Row: 2, Col: 2}, cell, "focus stops at the last row")

	m.press("esc")
	_, ok = m.Layout().Hover()
	assert.False(t, ok)
}

func TestAnimationSettles(t *testing.T) {
	now := time.Unix(1700000000, 0)
	m := newTestModel(t, Options{Grid: []grid.Option{grid.WithClock(func() time.Time { return now })}})

	m.press("1")
	require.True(t, m.Layout().Animating())
	assert.NotNil(t, m.send(animTickMsg(now)), "ticks continue while tracks move")
	assert.Equal(t, [grid.Tracks]int{26, 26, 26}, m.geometry().cols, "tracks have not moved yet")

	now = now.Add(time.Second)
	assert.Nil(t, m.send(animTickMsg(now)))
	assert.False(t, m.animating)
	assert.Equal(t, [grid.Tracks]int{39, 20, 19}, m.geometry().cols)
}

func TestMouseHoverAndClick(t *testing.T) {
	m := newTestModel(t, Options{})
	m.send(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.send(tea.MouseMsg{X: 45, Y: 16, Action: tea.MouseActionMotion})
	cell, ok := m.Layout().Hover()
	require.True(t, ok)
	assert.Equal(t, grid.Cell{Row: 1, Col: 1}, cell)

	m.send(tea.MouseMsg{X: 10, Y: 1, Action: tea.MouseActionMotion})
	_, ok = m.Layout().Hover()
	assert.False(t, ok, "moving over the header leaves the grid")

	m.send(tea.MouseMsg{X: 0, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, ModeDocs, m.Mode())
	assert.Equal(t, "guide", m.Section())
}

func TestDocsOverview(t *testing.T) {
	m := newTestModel(t, Options{})
	m.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.press("1", "enter")

	view := m.View()
	assert.Contains(t, view, "Back to Hub")
	assert.Contains(t, view, "Getting Started")
	assert.Contains(t, view, "Filter: All Content")
	assert.Contains(t, view, "Quick Start")

	body, lines := m.docsContent()
	assert.Empty(t, lines)
	assert.Contains(t, body, "Welcome to GitMesh!")
	assert.Contains(t, body, "File Structure Reference")
	assert.Contains(t, body, ".gitmesh/")
	assert.NotContains(t, body, "Last updated")
}

func TestDocsTabsAndCopy(t *testing.T) {
	m := newTestModel(t, Options{})
	m.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.press("1", "enter", "tab", "tab")
	require.Equal(t, "installation", m.Viewer().ActiveTab())

	body, lines := m.docsContent()
	assert.Contains(t, body, "Installation Methods")
	assert.Contains(t, body, "Last updated: "+viewer.LastUpdated)
	assert.Contains(t, body, viewer.LabelTerminal)
	blocks := m.codeBlocks()
	require.NotEmpty(t, blocks)
	assert.Len(t, lines, len(blocks))

	m.press("c")
	assert.Equal(t, blocks[0].Text, m.clip.Text())
	assert.Equal(t, clipboard.Token("guide/installation/npm"), m.copier.Current())
	body, _ = m.docsContent()
	assert.Equal(t, 1, strings.Count(body, "Copied!"))

	m.press("j", "c")
	assert.Equal(t, blocks[1].Text, m.clip.Text())
	assert.Equal(t, clipboard.Token(blocks[1].ID), m.copier.Current())
	body, _ = m.docsContent()
	assert.Equal(t, 1, strings.Count(body, "Copied!"), "only the latest copy is acknowledged")

	m.copier.Stop()
	assert.NotNil(t, m.send(feedbackMsg("")), "feedback listener is re-armed")
	body, _ = m.docsContent()
	assert.NotContains(t, body, "Copied!")
}

func TestCopyFailureIsOnlyLogged(t *testing.T) {
	m := newTestModel(t, Options{})
	m.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.press("1", "enter", "tab", "tab")
	before := m.View()

	m.clip.Fail(errors.New("clipboard denied"))
	m.press("c")

	assert.Empty(t, m.statusMsg)
	assert.Empty(t, m.copier.Current())
	assert.Equal(t, before, m.View())
	assert.NotContains(t, m.View(), "Failed to copy")
	assert.Contains(t, m.logs.String(), "failed to copy text")
	assert.Contains(t, m.logs.String(), "clipboard denied")
}

func TestSearchAndFilterAreCosmetic(t *testing.T) {
	m := newTestModel(t, Options{})
	m.press("1", "enter", "tab", "tab")
	before := len(m.codeBlocks())

	m.press("/")
	require.Equal(t, ModeSearch, m.Mode())
	m.send(keyMsg("docker"))
	assert.Equal(t, "docker", m.Viewer().Search())
	m.press("enter")
	assert.Equal(t, ModeDocs, m.Mode())

	m.press("f")
	assert.Equal(t, viewer.FilterCommands, m.Viewer().Filter())
	assert.Contains(t, m.View(), "Filter: Commands")
	assert.Len(t, m.codeBlocks(), before)
}

func TestSectionNotFound(t *testing.T) {
	m := newTestModel(t, Options{})
	m.press("8", "enter")

	assert.Equal(t, ModeNotFound, m.Mode())
	assert.Equal(t, "community", m.Section())
	view := m.View()
	assert.Contains(t, view, "Section not found")
	assert.Contains(t, view, "Back to Documentation Hub")

	m.press("c", "tab")
	assert.Equal(t, ModeNotFound, m.Mode())

	m.press("esc")
	assert.Equal(t, ModeGrid, m.Mode())
	assert.Empty(t, m.Section())
}

func TestDevKeys(t *testing.T) {
	m := newTestModel(t, Options{Dev: true})
	assert.Contains(t, m.View(), "+/- hover size")

	m.press("+", "]")
	assert.Equal(t, 6.5, m.Layout().HoverWeight())
	assert.Equal(t, 6, m.Layout().Gap())
	assert.Contains(t, m.statusMsg, "hover 6.5")

	m.press("u")
	assert.Contains(t, m.logs.String(), "updating codebase with current values")
	m.send(clearStatusMsg{})
	assert.Empty(t, m.statusMsg)

	plain := newTestModel(t, Options{})
	plain.press("+")
	assert.Equal(t, grid.DefaultHoverWeight, plain.Layout().HoverWeight())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	cmd := m.send(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
