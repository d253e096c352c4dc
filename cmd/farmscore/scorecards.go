package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/usecase"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/infrastructure/scorecard"
)

func newScorecardsCmd(_ *rootOptions) *cobra.Command {
	var dir, output string

	cmd := &cobra.Command{
		Use:   "scorecards",
		Short: "List available scorecards with their weights and tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := scorecard.Load(defaultScorecard, dir)
			if err != nil {
				return err
			}
			resp, err := usecase.NewListScorecardsUseCase(registry).Execute(cmd.Context())
			if err != nil {
				return err
			}
			return writeScorecards(cmd.OutOrStdout(), output, resp)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory of additional scorecard definitions")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or json")
	return cmd
}

func writeScorecards(w io.Writer, format string, resp dto.ListScorecardsResponse) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "text":
		for i, card := range resp.Scorecards {
			if i > 0 {
				fmt.Fprintln(w)
			}
			marker := ""
			if card.Name == resp.Default {
				marker = " (default)"
			}
			fmt.Fprintf(w, "%s%s  max score %s\n", card.Name, marker, card.MaxScore.String())
			for _, c := range card.Categories {
				fmt.Fprintf(w, "  %-20s weight %-6s %s\n", c.Name, c.Weight.Mul(c.Blend).String(), strings.Join(c.Attributes, ", "))
			}
			for _, t := range card.Tiers {
				fmt.Fprintf(w, "  <= %-6s %s\n", t.Upper.String(), t.Label)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
