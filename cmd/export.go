package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/progress"
	"github.com/gitmesh/docs-hub/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the documentation as a static HTML site",
	Long:  `Renders every section to Markdown and then to highlighted HTML, with an index page of the landing tiles and a JSON search index.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("output", "", "output directory (overrides config)")
	exportCmd.Flags().String("style", "", "chroma style for code blocks (overrides config)")
	exportCmd.Flags().Bool("markdown", false, "also write each section as Markdown")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Export.OutputDir = out
	}
	if style, _ := cmd.Flags().GetString("style"); style != "" {
		cfg.Export.HighlightStyle = style
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	exporter := site.NewExporter(reg, grid.DefaultTiles(), cfg.Export.OutputDir, cfg.Export.HighlightStyle)
	exporter.Reporter = progress.NewReporter(os.Stderr, "Exporting")
	exporter.WriteMarkdown, _ = cmd.Flags().GetBool("markdown")

	pages, err := exporter.Export()
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	fmt.Printf("Static site exported: %s (%d pages)\n", cfg.Export.OutputDir, pages)
	return nil
}
