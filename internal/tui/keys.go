package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

// handleKeyPress routes a key to the handler of the current mode.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.mode {
	case ModeGrid:
		return m.handleGridKeys(msg)
	case ModeDocs:
		return m.handleDocsKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeNotFound:
		switch msg.String() {
		case "esc", "enter", "backspace", "b":
			m.viewer.Back()
		case "q":
			return tea.Quit
		}
	}
	return nil
}

func (m *Model) handleGridKeys(msg tea.KeyMsg) tea.Cmd {
	row, col := m.focus/grid.Tracks, m.focus%grid.Tracks

	switch msg.String() {
	case "q":
		return tea.Quit
	case "left", "h":
		return m.enter(row*grid.Tracks + max(col-1, 0))
	case "right", "l":
		return m.enter(row*grid.Tracks + min(col+1, grid.Tracks-1))
	case "up", "k":
		return m.enter(max(row-1, 0)*grid.Tracks + col)
	case "down", "j":
		return m.enter(min(row+1, grid.Tracks-1)*grid.Tracks + col)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.enter(int(msg.String()[0] - '1'))
	case "enter", " ":
		return m.activateFocused()
	case "esc":
		return m.leave()
	}

	if m.opts.Dev {
		return m.handleDevKeys(msg)
	}
	return nil
}

// handleDevKeys adjusts the grid the same way the web dev controls do.
func (m *Model) handleDevKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "+", "=":
		m.layout.SetHoverWeight(m.layout.HoverWeight() + 0.5)
	case "-", "_":
		m.layout.SetHoverWeight(m.layout.HoverWeight() - 0.5)
	case "]":
		m.layout.SetGap(m.layout.Gap() + 2)
	case "[":
		m.layout.SetGap(m.layout.Gap() - 2)
	case "u":
		m.log.Info("updating codebase with current values",
			"hover_weight", m.layout.HoverWeight(),
			"gap", m.layout.Gap(),
			"tiles", len(m.layout.Tiles()))
		return m.setStatus("Logged current layout values")
	default:
		return nil
	}
	return tea.Batch(
		m.setStatus(fmt.Sprintf("hover %.1f  gap %dpx", m.layout.HoverWeight(), m.layout.Gap())),
		m.startAnimation(),
	)
}

func (m *Model) activateFocused() tea.Cmd {
	tiles := m.layout.Tiles()
	if m.focus < 0 || m.focus >= len(tiles) {
		return nil
	}
	t := tiles[m.focus]
	m.metrics.RecordTileActivation(t.Section)
	if err := m.layout.Activate(t.ID); err != nil {
		m.log.Warn("activating tile", "tile", t.ID, "error", err)
	}
	return nil
}

func (m *Model) handleDocsKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc", "backspace", "b":
		m.viewer.Back()
	case "tab", "right", "l":
		m.stepTab(1)
	case "shift+tab", "left", "h":
		m.stepTab(-1)
	case "down", "j":
		m.stepBlock(1)
	case "up", "k":
		m.stepBlock(-1)
	case "pgdown", "ctrl+d":
		m.body.HalfViewDown()
	case "pgup", "ctrl+u":
		m.body.HalfViewUp()
	case "c", "enter":
		m.copyFocused()
	case "/":
		m.mode = ModeSearch
		return m.search.Focus()
	case "f":
		m.cycleFilter()
	}
	return nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		m.search.Blur()
		m.mode = ModeDocs
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.viewer.SetSearch(m.search.Value())
	return cmd
}

func (m *Model) stepTab(delta int) {
	tabs := m.viewer.Tabs()
	if len(tabs) == 0 {
		return
	}
	cur := 0
	for i, t := range tabs {
		if t.Key == m.viewer.ActiveTab() {
			cur = i
		}
	}
	next := (cur + delta + len(tabs)) % len(tabs)
	if m.viewer.SelectTab(tabs[next].Key) {
		m.block = 0
		m.body.GotoTop()
		m.refreshBody()
	}
}

func (m *Model) stepBlock(delta int) {
	n := len(m.codeBlocks())
	if n == 0 {
		if delta > 0 {
			m.body.ScrollDown(delta)
		} else {
			m.body.ScrollUp(-delta)
		}
		return
	}
	m.block = min(max(m.block+delta, 0), n-1)
	m.refreshBody()
}

func (m *Model) cycleFilter() {
	cur := 0
	for i, f := range viewer.Filters {
		if f.Value == m.viewer.Filter() {
			cur = i
		}
	}
	m.viewer.SetFilter(viewer.Filters[(cur+1)%len(viewer.Filters)].Value)
}

// handleMouse hovers the tile under the pointer and activates it on click.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.mode != ModeGrid {
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.body.ScrollDown(3)
		case tea.MouseButtonWheelUp:
			m.body.ScrollUp(3)
		}
		return nil
	}

	var tile grid.Tile
	cell, ok := m.geometry().cellAt(msg.X, msg.Y)
	if ok {
		tile, ok = m.layout.TileAt(cell)
	}
	if !ok {
		if msg.Action == tea.MouseActionMotion {
			return m.leave()
		}
		return nil
	}
	i := m.indexOf(tile.ID)

	switch msg.Action {
	case tea.MouseActionMotion:
		return m.enter(i)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		cmd := m.enter(i)
		m.activateFocused()
		return cmd
	}
	return nil
}

func (m *Model) indexOf(id int) int {
	for i, t := range m.layout.Tiles() {
		if t.ID == id {
			return i
		}
	}
	return -1
}
