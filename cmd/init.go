package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitmesh/docs-hub/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize meshdocs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the docs hub and writes a .meshdocs.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
