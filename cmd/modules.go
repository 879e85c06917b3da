package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the course modules",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMODULE\tSTEPS\tPOINTS")
		for _, m := range catalog.Modules {
			steps := fmt.Sprint(len(m.Steps))
			if !m.Available() {
				steps = "próximamente"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", m.ID, m.Title, steps, m.MaxScore())
		}
		return w.Flush()
	},
}
