package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relstack/relstack/usecase/release"
)

func newCmdDiff() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "diff <old-release-config> <new-release-config>",
		Short:         "Structurally compare the renders of two release configurations",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor, _ := cmd.Flags().GetBool("color")

			uc := &release.UseCase{}
			out, err := uc.Diff(cmd.Context(), release.DiffInput{
				OldConfigPath: args[0],
				NewConfigPath: args[1],
				UseColor:      useColor,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			result := out.Result
			for _, key := range result.Removed {
				fmt.Fprintf(w, "- %s\n", key)
			}
			for _, key := range result.Added {
				fmt.Fprintf(w, "+ %s\n", key)
			}
			for _, m := range result.Modified {
				fmt.Fprintf(w, "~ %s\n%s\n", m.Key, m.Diff)
			}
			fmt.Fprintln(w, result.Summary())
			if result.HasChanges() {
				return errDiffChanges
			}
			return nil
		},
	}
	cmd.Flags().Bool("color", false, "Colorize per-resource diff output")
	return cmd
}
