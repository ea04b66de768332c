package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gitmesh/docs-hub/internal/config"
	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `meshdocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section of cfg. --verbose
// forces debug level.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, io.Closer, error) {
	opts := logging.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	}
	if verbose {
		opts.Level = "debug"
	}
	log, closer, err := logging.New(opts, w)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}
	slog.SetDefault(log)
	return log, closer, nil
}

// loadRegistry returns the embedded documentation registry.
func loadRegistry() (*content.Registry, error) {
	reg, err := content.Default()
	if err != nil {
		return nil, fmt.Errorf("loading documentation: %w", err)
	}
	return reg, nil
}

// gridOptions maps the grid section of cfg onto layout options.
func gridOptions(cfg *config.Config) []grid.Option {
	return []grid.Option{
		grid.WithHoverWeight(cfg.Grid.HoverWeight),
		grid.WithGap(cfg.Grid.Gap),
		grid.WithTransition(cfg.Grid.Transition()),
	}
}
