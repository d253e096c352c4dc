package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/infrastructure/scorecard"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check scorecard definitions in a directory",
		Long: `validate loads every *.yaml and *.yml file in --dir and reports the first
weight table misconfiguration found. It exits non-zero when any file is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := os.Stat(dir)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			cards, err := scorecard.LoadDir(dir)
			if err != nil {
				return err
			}
			for _, c := range cards {
				root.log().Debug("scorecard valid", "name", c.Name())
				fmt.Fprintf(cmd.OutOrStdout(), "ok  %s (max score %s)\n", c.Name(), c.MaxScore().String())
			}
			if len(cards) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no scorecard definitions in %s\n", dir)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory of scorecard definitions")
	_ = cmd.MarkFlagRequired("dir") //nolint:errcheck // flag is defined above
	return cmd
}
