package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openkraft/uikraft/internal/adapters/outbound/tui"
	"github.com/openkraft/uikraft/internal/application"
	"github.com/openkraft/uikraft/internal/domain"
)

func newFixCmd(opts *rootOptions) *cobra.Command {
	var (
		violationsFile string
		write          bool
		jsonOutput     bool
	)

	cmd := &cobra.Command{
		Use:   "fix <component-file>",
		Short: "Apply rule-based fixes for reported violations",
		Long: "Patch a component for the violations in a saved result or violation set. " +
			"Without --write the patched code is only shown as a diff.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if violationsFile == "" {
				return fmt.Errorf("--violations is required")
			}
			data, err := os.ReadFile(violationsFile)
			if err != nil {
				return fmt.Errorf("reading violations: %w", err)
			}
			violations, err := application.DecodeViolations(data)
			if err != nil {
				return err
			}

			app, err := opts.app()
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.Fix.FixFile(args[0], violations, domain.FixOptions{Write: write})
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFix(res))
			if write && res.HasFixes() {
				fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&violationsFile, "violations", "", "JSON file with a violation set or saved validation results")
	cmd.Flags().BoolVar(&write, "write", false, "Write the fixed component back to disk")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output fix result as JSON")

	return cmd
}
