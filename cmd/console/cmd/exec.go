package cmd

import (
	"io"
	"strings"

	"github.com/mwantia/console"
	"github.com/mwantia/console/lineedit"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <command> [args...]",
	Short: "Executes a single command line and exits with its result",
	Example: `  console exec echo -m hello -n 2
  console exec "calc -a 7 -b 2 -v"`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
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

		session, err := newSession(ctx, cfg,
			console.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
			console.WithoutBanner(),
			console.WithReader(lineedit.NewDumbReader(strings.NewReader(""), io.Discard, nil, 0)))
		if err != nil {
			return err
		}

		if err := session.Init(ctx); err != nil {
			return err
		}
		defer session.Deinit(ctx)

		ret, err := session.Exec(joinArgs(args))
		if err != nil {
			exitCode = 1
			return nil
		}
		exitCode = ret
		return nil
	},
}

// joinArgs quotes arguments containing whitespace so they survive the
// tokenizer as single tokens.
func joinArgs(args []string) string {
	if len(args) == 1 {
		return args[0]
	}

	quoted := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsAny(arg, " \t\"'") {
			arg = "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
