package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkraft/uikraft/internal/adapters/outbound/sarif"
	"github.com/openkraft/uikraft/internal/application"
	"github.com/openkraft/uikraft/internal/bootstrap"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert saved results to other formats",
	}
	cmd.AddCommand(newExportSARIFCmd(opts))
	return cmd
}

func newExportSARIFCmd(opts *rootOptions) *cobra.Command {
	var (
		output   string
		artifact string
	)

	cmd := &cobra.Command{
		Use:   "sarif <result-json>",
		Short: "Export validation results as SARIF 2.1.0",
		Long:  "Convert a saved validation result, result list or validate-all report (from --json) to a SARIF 2.1.0 log for code scanning.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading results: %w", err)
			}
			results, err := application.DecodeResults(data)
			if err != nil {
				return err
			}

			app, err := opts.app()
			if err != nil {
				return err
			}
			defer app.Close()

			log := sarif.Export(results, provenance(app, artifact))
			if output == "" {
				return sarif.Write(cmd.OutOrStdout(), log)
			}
			if err := sarif.WriteFile(output, log); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the SARIF log to this file instead of stdout")
	cmd.Flags().StringVar(&artifact, "artifact", "", "Component file the findings belong to")

	return cmd
}

// provenance stamps the log with the repository and revision when the
// project is a git checkout.
func provenance(app *bootstrap.App, artifact string) sarif.Options {
	opts := sarif.Options{ToolVersion: version}
	if artifact != "" {
		opts.ArtifactURI = filepath.ToSlash(artifact)
		if abs, err := filepath.Abs(artifact); err == nil {
			if rel, err := filepath.Rel(app.ProjectPath, abs); err == nil && !strings.HasPrefix(rel, "..") {
				opts.ArtifactURI = filepath.ToSlash(rel)
			}
		}
	}
	if !app.Git.IsGitRepo(app.ProjectPath) {
		return opts
	}
	if hash, err := app.Git.CommitHash(app.ProjectPath); err == nil {
		opts.RevisionID = hash
	}
	if url, err := app.Git.RemoteURL(app.ProjectPath); err == nil {
		opts.RepositoryURI = url
	}
	return opts
}
