package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/gitmesh/docs-hub/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the documentation sections and snippets to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Stdout carries the protocol, so logs go to stderr.
		log, closer, err := newLogger(cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer closer.Close()

		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "meshdocs MCP server started on stdio (sections=%d)\n", len(reg.Keys()))

		srv := mcpserver.NewServer(reg, log)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
