/*
Package tui implements the terminal front-end of the docs hub.

# Architecture

The TUI follows the Bubble Tea Model-Update-View pattern:
  - model.go: state and construction; owns the active section
  - keys.go: keyboard and mouse routing per mode
  - render.go: the grid, viewer and not-found screens
  - geometry.go: track sizes in terminal cells and pointer hit-testing

The landing grid is a grid.Layout: pointer motion enters and leaves tiles,
and the hovered row and column grow over the layout's transition while an
animation tick is running. Activating a tile opens a viewer.Viewer for the
tile's section; its Back action returns to the grid.

# Threading Model

Bubble Tea runs Update on one goroutine. The only other goroutine is the
clipboard.Copier feedback timer, whose expiry reaches the model as a message
through a channel read by a tea.Cmd.

# Example Usage

	m := tui.New(reg, grid.DefaultTiles(), tui.Options{Clipboard: clipboard.System{}})
	defer m.Close()
	program := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := program.Run(); err != nil {
		log.Fatal(err)
	}
*/
package tui
