package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relstack/relstack/usecase/release"
)

func newCmdRender() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "render <release-config>",
		Short:         "Render a release configuration into its resource set",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			uc := &release.UseCase{}
			out, err := uc.Render(cmd.Context(), release.RenderInput{ConfigPath: args[0]})
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, []byte(out.Manifest), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out.Manifest)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the manifest to a file instead of stdout")
	return cmd
}
