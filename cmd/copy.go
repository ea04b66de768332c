package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitmesh/docs-hub/internal/clipboard"
	"github.com/gitmesh/docs-hub/internal/content"
)

var copyCmd = &cobra.Command{
	Use:   "copy <pattern>",
	Short: "Copy documentation snippets to the clipboard",
	Long: `Copies every snippet whose content path matches the pattern. Paths look
like guide/installation/npm; patterns use ** and * globs, for example
"guide/installation/*" or "**/docker*". Matches are joined with blank lines.`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().Bool("print", false, "write the snippets to stdout instead of the clipboard")
	copyCmd.Flags().String("clipboard", "", "clipboard backend: system, osc52 or none (overrides config)")
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if backend, _ := cmd.Flags().GetString("clipboard"); backend != "" {
		cfg.Clipboard.Backend = backend
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	matches, err := reg.Glob(args[0])
	if err != nil {
		return err
	}
	var parts []string
	for _, m := range matches {
		if _, ok := m.Node.(content.Leaf); ok {
			parts = append(parts, content.Text(m.Node))
		}
	}
	if len(parts) == 0 {
		return fmt.Errorf("no snippets match %q\nRun `meshdocs sections` to see what is available", args[0])
	}
	text := strings.Join(parts, "\n\n")

	if p, _ := cmd.Flags().GetBool("print"); p {
		fmt.Println(text)
		return nil
	}

	writer, err := clipboard.New(cfg.Clipboard.Backend, os.Stdout)
	if err != nil {
		return err
	}
	if err := writer.WriteText(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Copied %d snippet(s) to the clipboard\n", len(parts))
	return nil
}
