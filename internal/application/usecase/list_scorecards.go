package usecase

import (
	"context"
	"fmt"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/port"
)

// ListScorecardsUseCase describes every loaded scorecard.
type ListScorecardsUseCase struct {
	registry port.ScorecardRegistry
}

// NewListScorecardsUseCase wires dependencies.
func NewListScorecardsUseCase(registry port.ScorecardRegistry) *ListScorecardsUseCase {
	return &ListScorecardsUseCase{registry: registry}
}

// Execute returns the scorecards sorted by name.
func (uc *ListScorecardsUseCase) Execute(_ context.Context) (dto.ListScorecardsResponse, error) {
	names := uc.registry.Names()
	resp := dto.ListScorecardsResponse{
		Default:    uc.registry.Default(),
		Scorecards: make([]dto.ScorecardSummary, 0, len(names)),
	}
	for _, name := range names {
		card, err := uc.registry.Get(name)
		if err != nil {
			return dto.ListScorecardsResponse{}, fmt.Errorf("load scorecard %q: %w", name, err)
		}
		resp.Scorecards = append(resp.Scorecards, ToScorecardSummary(card))
	}
	return resp, nil
}

// ToScorecardSummary converts a scorecard to its display form.
func ToScorecardSummary(card model.Scorecard) dto.ScorecardSummary {
	s := dto.ScorecardSummary{
		Name:        card.Name(),
		Description: card.Description(),
		MaxScore:    card.MaxScore(),
	}
	for _, in := range card.Inputs() {
		s.Inputs = append(s.Inputs, dto.InputSummary{
			Name: in.Name,
			Kind: string(in.Kind),
			Min:  in.Min,
			Max:  in.Max,
		})
	}
	for _, c := range card.Categories() {
		attrs := make([]string, 0, len(c.Attributes))
		for _, a := range c.Attributes {
			attrs = append(attrs, a.Name)
		}
		s.Categories = append(s.Categories, dto.CategorySummary{
			Name:       c.Name,
			Weight:     c.Weight,
			Blend:      c.Blend,
			MaxSum:     c.MaxSum,
			Attributes: attrs,
		})
	}
	for _, b := range card.Tiers() {
		s.Tiers = append(s.Tiers, dto.TierSummary{
			Tier:  b.Tier.String(),
			Label: b.Tier.Label(),
			Grade: b.Tier.Grade(),
			Upper: b.Upper,
		})
	}
	return s
}
