package cmd

import (
	"github.com/spf13/cobra"
)

var (
	runPrompt  string
	runHistory bool
	runNoHelp  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Starts the interactive console (default)",
	RunE:  runConsole,
}

func init() {
	runCmd.Flags().StringVar(&runPrompt, "prompt", "", "Prompt shown before every line")
	runCmd.Flags().BoolVar(&runHistory, "history", false, "Persist the command history")
	runCmd.Flags().BoolVar(&runNoHelp, "no-help", false, "Do not register the help command")
}

func runConsole(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runPrompt != "" {
		cfg.Prompt = runPrompt
	}
	if runHistory {
		cfg.StoreHistory = true
	}
	if runNoHelp {
		cfg.RegisterHelp = false
	}

	session, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}

	if err := session.Init(ctx); err != nil {
		return err
	}
	defer session.Deinit(ctx)

	return session.Run(ctx)
}
