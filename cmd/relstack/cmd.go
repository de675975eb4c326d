package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relstack/relstack/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relstack",
		Short:   "Render a release configuration into its resource set",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log-format", "text", "Log format (text|json) (env RELSTACK_LOG_FORMAT)")

	v := viper.New()
	v.SetEnvPrefix("RELSTACK")
	v.AutomaticEnv()

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		if err := v.BindPFlag("log_format", c.Flags().Lookup("log-format")); err != nil {
			return err
		}
		l, err := logging.New(v.GetString("log_format"), slog.LevelInfo)
		if err != nil {
			return err
		}
		c.SetContext(logging.WithLogger(c.Context(), l))
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdRender())
	cmd.AddCommand(newCmdDiff())
	cmd.AddCommand(newCmdValidate())
	return cmd
}

// errDiffChanges makes `diff` exit with a distinct code when the two renders
// differ, so review tooling can branch on it.
var errDiffChanges = errors.New("releases differ")

// exitCode maps command errors to process exit codes: 1 for changes found by
// diff, 2 for any real failure.
func exitCode(err error) int {
	if errors.Is(err, errDiffChanges) {
		return 1
	}
	return 2
}
