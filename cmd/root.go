package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitmesh/docs-hub/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "meshdocs",
	Short: "GitMesh documentation hub for the browser and the terminal",
	Long: `meshdocs serves the GitMesh documentation hub: a landing grid of nine
tiles that open a tabbed documentation viewer with copyable command and
configuration snippets. The same hub runs in the browser (serve), in the
terminal (browse) and for AI agents over MCP (mcp).`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
