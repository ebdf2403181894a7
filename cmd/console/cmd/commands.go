package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Lists all available commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.StoreHistory = false
		if logLevel == "" {
			cfg.Log.Level = "warn"
		}

		session, err := newSession(ctx, cfg)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, c := range session.Engine().Commands() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Hint, c.Help)
		}
		return w.Flush()
	},
}
