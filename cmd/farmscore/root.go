package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/BrianGithinji-BMG/Credit--Scoring/pkg/observability"
)

type rootOptions struct {
	verbose bool
	logger  *slog.Logger
}

// newRootCmd builds the command tree. Results go to out, logs to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "farmscore",
		Short: "Score farmers' creditworthiness from declarative scorecards",
		Long: `farmscore evaluates a farmer's attributes against a weighted scorecard and
reports the credit score, its risk tier and the per-category breakdown.

Scorecards ship with the binary; operators may add their own with --dir.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			opts.logger = observability.InitLogger(observability.LogConfig{
				Level:   level,
				Format:  "text",
				Service: "farmscore-cli",
				Output:  errOut,
			})
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(
		newScoreCmd(opts),
		newScorecardsCmd(opts),
		newValidateCmd(opts),
		newCertsCmd(opts),
	)
	return cmd
}

func (o *rootOptions) log() *slog.Logger {
	if o.logger == nil {
		return observability.NopLogger()
	}
	return o.logger
}
