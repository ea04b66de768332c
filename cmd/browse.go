package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gitmesh/docs-hub/internal/clipboard"
	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/logging"
	"github.com/gitmesh/docs-hub/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the docs hub in the terminal",
	Long: `Opens the terminal hub. Move the mouse or the arrow keys over the grid to
grow a tile, press enter or click to open its section, and press c on a
snippet to copy it.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().Bool("dev", false, "enable the hover size and gap keys")
	browseCmd.Flags().String("clipboard", "", "clipboard backend: system, osc52 or none (overrides config)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if backend, _ := cmd.Flags().GetString("clipboard"); backend != "" {
		cfg.Clipboard.Backend = backend
	}

	// The terminal belongs to the UI, so logs always go to a file.
	if cfg.Log.File == "" {
		cfg.Log.File = logging.DefaultFile("browse.log")
	}
	log, closer, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	writer, err := clipboard.New(cfg.Clipboard.Backend, os.Stdout)
	if err != nil {
		return err
	}

	dev, _ := cmd.Flags().GetBool("dev")
	m := tui.New(reg, grid.DefaultTiles(), tui.Options{
		Clipboard:      writer,
		Feedback:       cfg.Clipboard.Feedback(),
		Dev:            dev || cfg.Server.Dev,
		CleanInterface: cfg.Grid.CleanInterface,
		Logger:         log,
		Grid:           gridOptions(cfg),
	})
	defer m.Close()

	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running terminal hub: %w", err)
	}
	return nil
}
