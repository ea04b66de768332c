package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gitmesh/docs-hub/internal/grid"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List documentation sections and the tiles that open them",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		tiles := map[string]int{}
		for _, t := range grid.DefaultTiles() {
			tiles[t.Section] = t.ID
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tTITLE\tTILE\tTABS")
		for _, sec := range reg.Sections() {
			tile := "-"
			if id, ok := tiles[sec.Key]; ok {
				tile = fmt.Sprint(id)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sec.Key, sec.Title, tile, strings.Join(sec.Content.Keys(), ", "))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		for _, t := range grid.DefaultTiles() {
			if _, ok := reg.Section(t.Section); !ok {
				fmt.Fprintf(os.Stderr, "Note: tile %d (%s) opens %q, which has no documentation yet\n", t.ID, t.Title, t.Section)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}
