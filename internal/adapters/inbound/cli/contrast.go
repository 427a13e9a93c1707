package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/uikraft/internal/adapters/outbound/tui"
	"github.com/openkraft/uikraft/internal/domain/color"
)

func newContrastCmd() *cobra.Command {
	var (
		kind       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Check the WCAG contrast of two colors",
		Long:  "Compute the contrast ratio of two colors, rate it against WCAG AA and AAA, and suggest accessible replacements. No browser is needed.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := color.Kind(kind)
			switch k {
			case color.NormalText, color.LargeText, color.UIComponent:
			default:
				return fmt.Errorf("unknown kind %q (want normal_text, large_text or ui_component)", kind)
			}
			fg, ok := color.Parse(args[0])
			if !ok {
				return fmt.Errorf("cannot parse color %q", args[0])
			}
			bg, ok := color.Parse(args[1])
			if !ok {
				return fmt.Errorf("cannot parse color %q", args[1])
			}

			v := color.Assess(fg, bg)
			if jsonOutput {
				if err := renderJSON(cmd, v); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderVerdict(v))
			}

			if !v.AA[k] {
				return failed("contrast %.2f:1 is below AA %.1f:1 for %s", v.Ratio, color.RequiredAA(k), k)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(color.NormalText), "Threshold to enforce: normal_text, large_text or ui_component")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output verdict as JSON")

	return cmd
}
