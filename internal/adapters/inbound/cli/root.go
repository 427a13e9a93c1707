package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openkraft/uikraft/internal/adapters/outbound/logging"
	"github.com/openkraft/uikraft/internal/bootstrap"
)

var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	project   string
	logLevel  string
	logFormat string
}

// app builds the composition root for one command invocation. Callers own
// Close.
func (o *rootOptions) app() (*bootstrap.App, error) {
	level, format := logging.FromEnv(o.logLevel, o.logFormat)
	return bootstrap.New(o.project, logging.New(level, format))
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "uikraft",
		Short:         "Component conformance validator",
		Long:          "uikraft renders React components in a headless browser and checks accessibility, keyboard navigation, focus indicators, state contrast and design token adherence.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.project, "project", ".", "Project root holding .uikraft.yaml and run history")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (env "+logging.EnvLevel+")")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: console or json (env "+logging.EnvFormat+")")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newFixCmd(opts))
	cmd.AddCommand(newContrastCmd())
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
