package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/uikraft/internal/adapters/outbound/history"
	"github.com/openkraft/uikraft/internal/adapters/outbound/tui"
	"github.com/openkraft/uikraft/internal/domain"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		component  string
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past validate-all runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.app()
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := app.History.Load(app.ProjectPath)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if component != "" {
				entries = history.ForComponent(entries, component)
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			if jsonOutput {
				if entries == nil {
					entries = []domain.RunEntry{}
				}
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Only show runs of this component")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most the N most recent runs")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")

	return cmd
}
