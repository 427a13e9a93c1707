package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkraft/uikraft/internal/adapters/outbound/tui"
	"github.com/openkraft/uikraft/internal/application"
	"github.com/openkraft/uikraft/internal/bootstrap"
	"github.com/openkraft/uikraft/internal/domain"
)

// validateFlags are shared by every validate subcommand.
type validateFlags struct {
	name       string
	jsonOutput bool
	strict     bool
}

func (f *validateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Component to mount (inferred from the exports when omitted)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output result as JSON")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on warnings too")
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a component",
		Long:  "Render a component in a headless browser and validate one conformance dimension, or all of them in parallel.",
	}
	cmd.AddCommand(newValidateA11yCmd(opts))
	cmd.AddCommand(newValidateKeyboardCmd(opts))
	cmd.AddCommand(newValidateFocusCmd(opts))
	cmd.AddCommand(newValidateContrastCmd(opts))
	cmd.AddCommand(newValidateTokensCmd(opts))
	cmd.AddCommand(newValidateAllCmd(opts))
	return cmd
}

// runValidator loads the component, runs fn and reports its result.
func runValidator(
	cmd *cobra.Command,
	opts *rootOptions,
	flags *validateFlags,
	path string,
	fn func(ctx context.Context, app *bootstrap.App, src domain.ComponentSource) (*domain.ValidationResult, error),
) error {
	src, err := application.ReadComponent(path, flags.name)
	if err != nil {
		return err
	}
	app, err := opts.app()
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := fn(cmd.Context(), app, src)
	if err != nil {
		return infra(fmt.Errorf("validation could not run: %w", err))
	}

	if flags.jsonOutput {
		if err := renderJSON(cmd, res); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(res))
	}
	return verdict(res, flags.strict)
}

func verdict(res *domain.ValidationResult, strict bool) error {
	if !res.Valid {
		return failed("%s validation failed: %d error(s)", res.Validator, len(res.Errors))
	}
	if strict && len(res.Warnings) > 0 {
		return failed("%s validation failed (strict): %d warning(s)", res.Validator, len(res.Warnings))
	}
	return nil
}

func newValidateA11yCmd(opts *rootOptions) *cobra.Command {
	var (
		flags    validateFlags
		variants []string
	)
	cmd := &cobra.Command{
		Use:   "a11y <component-file>",
		Short: "Run axe-core accessibility checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidator(cmd, opts, &flags, args[0], func(ctx context.Context, app *bootstrap.App, src domain.ComponentSource) (*domain.ValidationResult, error) {
				return app.A11y.Validate(ctx, src, variants)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&variants, "variants", nil, "Variant names passed as the variant prop, one audit each")
	return cmd
}

func newValidateKeyboardCmd(opts *rootOptions) *cobra.Command {
	var (
		flags         validateFlags
		componentType string
	)
	cmd := &cobra.Command{
		Use:   "keyboard <component-file>",
		Short: "Test keyboard navigation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := parseComponentType(componentType)
			if err != nil {
				return err
			}
			return runValidator(cmd, opts, &flags, args[0], func(ctx context.Context, app *bootstrap.App, src domain.ComponentSource) (*domain.ValidationResult, error) {
				return app.Keyboard.Validate(ctx, src, ct)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&componentType, "type", "", "Component type: "+componentTypeList())
	return cmd
}

func newValidateFocusCmd(opts *rootOptions) *cobra.Command {
	var flags validateFlags
	cmd := &cobra.Command{
		Use:   "focus <component-file>",
		Short: "Check focus indicators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidator(cmd, opts, &flags, args[0], func(ctx context.Context, app *bootstrap.App, src domain.ComponentSource) (*domain.ValidationResult, error) {
				return app.Focus.Validate(ctx, src)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newValidateContrastCmd(opts *rootOptions) *cobra.Command {
	var flags validateFlags
	cmd := &cobra.Command{
		Use:   "contrast <component-file>",
		Short: "Check contrast in every interactive state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidator(cmd, opts, &flags, args[0], func(ctx context.Context, app *bootstrap.App, src domain.ComponentSource) (*domain.ValidationResult, error) {
				return app.Contrast.Validate(ctx, src)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newValidateTokensCmd(opts *rootOptions) *cobra.Command {
	var (
		flags      validateFlags
		tokensFile string
		computed   bool
	)
	cmd := &cobra.Command{
		Use:   "tokens <component-file>",
		Short: "Score design token adherence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidator(cmd, opts, &flags, args[0], func(ctx context.Context, app *bootstrap.App, src domain.ComponentSource) (*domain.ValidationResult, error) {
				tokens, err := app.DesignTokens(tokensFile)
				if err != nil {
					return nil, err
				}
				return app.Tokens.Validate(ctx, application.TokenRequest{
					Source:   src,
					Tokens:   tokens,
					Computed: computed,
				})
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&tokensFile, "tokens", "", "Design tokens file (defaults to tokens_file in .uikraft.yaml)")
	cmd.Flags().BoolVar(&computed, "computed", false, "Read computed styles from the rendered component")
	return cmd
}

func newValidateAllCmd(opts *rootOptions) *cobra.Command {
	var (
		flags         validateFlags
		variants      []string
		componentType string
		tokensFile    string
		computed      bool
	)
	cmd := &cobra.Command{
		Use:   "all <component-file>",
		Short: "Run every validator in parallel",
		Long:  "Run every validator not skipped in .uikraft.yaml on one shared browser and record the run in history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := parseComponentType(componentType)
			if err != nil {
				return err
			}
			src, err := application.ReadComponent(args[0], flags.name)
			if err != nil {
				return err
			}
			app, err := opts.app()
			if err != nil {
				return err
			}
			defer app.Close()

			tokens, err := app.DesignTokens(tokensFile)
			if err != nil {
				return err
			}

			report := app.Suite.Run(cmd.Context(), application.SuiteRequest{
				Source:        src,
				Variants:      variants,
				ComponentType: ct,
				Tokens:        tokens,
				Computed:      computed,
				ProjectPath:   app.ProjectPath,
			})

			if flags.jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSuite(report))
			}
			return suiteVerdict(report, flags.strict)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&variants, "variants", nil, "Variant names for the a11y audit")
	cmd.Flags().StringVar(&componentType, "type", "", "Component type: "+componentTypeList())
	cmd.Flags().StringVar(&tokensFile, "tokens", "", "Design tokens file (defaults to tokens_file in .uikraft.yaml)")
	cmd.Flags().BoolVar(&computed, "computed", false, "Read computed styles for the token audit")
	return cmd
}

// suiteVerdict fails when any validator rejected the component, and
// otherwise reports validators that could not run.
func suiteVerdict(report *domain.SuiteReport, strict bool) error {
	var errs []error
	for _, res := range report.Results {
		if err := verdict(res, strict); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &ExitError{Code: ExitFailed, Err: errors.Join(errs...)}
	}
	if len(report.Failures) > 0 {
		names := make([]string, 0, len(report.Failures))
		for name := range report.Failures {
			names = append(names, name)
		}
		sort.Strings(names)
		return infra(fmt.Errorf("could not run: %s", strings.Join(names, ", ")))
	}
	return nil
}

func parseComponentType(s string) (domain.ComponentType, error) {
	ct, ok := domain.ParseComponentType(s)
	if !ok {
		return "", fmt.Errorf("unknown component type %q (want one of %s)", s, componentTypeList())
	}
	return ct, nil
}

func componentTypeList() string {
	names := make([]string, len(domain.ValidComponentTypes))
	for i, t := range domain.ValidComponentTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
