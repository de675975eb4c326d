package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relstack/relstack/usecase/release"
)

func newCmdValidate() *cobra.Command {
	return &cobra.Command{
		Use:           "validate <release-config>",
		Short:         "Validate a release configuration without rendering",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := &release.UseCase{}
			out, err := uc.Validate(cmd.Context(), release.ValidateInput{ConfigPath: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK release %s (%d components)\n", out.Release, out.Components)
			return nil
		},
	}
}
