package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/event"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockRegistry struct {
	cards       map[string]model.Scorecard
	defaultName string
}

func (m *mockRegistry) Get(name string) (model.Scorecard, error) {
	c, ok := m.cards[name]
	if !ok {
		return model.Scorecard{}, fmt.Errorf("%w: %q", model.ErrScorecardNotFound, name)
	}
	return c, nil
}

func (m *mockRegistry) Names() []string {
	names := make([]string, 0, len(m.cards))
	for n := range m.cards {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (m *mockRegistry) Default() string { return m.defaultName }

type mockEventPublisher struct {
	mu              sync.Mutex
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockAssessmentRecorder struct {
	mu         sync.Mutex
	recorded   []model.ScoreBreakdown
	rejections []string
}

func (m *mockAssessmentRecorder) RecordAssessment(_ context.Context, b model.ScoreBreakdown) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, b)
}

func (m *mockAssessmentRecorder) RecordRejection(_ context.Context, _ string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections = append(m.rejections, reason)
}

// --- Fixtures ---

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// creditCard is a two-category scorecard: income (ladder) and repayment
// history (lookup), weighted 60/40.
func creditCard(t *testing.T) model.Scorecard {
	t.Helper()
	ladder, err := model.NewLadderRule([]model.LadderStep{
		{Op: model.LessThan, Bound: d(200000), Score: d(1)},
		{Op: model.AtMost, Bound: d(1000000), Score: d(3)},
	}, d(5))
	require.NoError(t, err)
	lookup, err := model.NewLookupRule(map[string]decimal.Decimal{
		"Good": d(2), "Fair": d(1), "Poor": d(0.5),
	}, decimal.Zero)
	require.NoError(t, err)

	card, err := model.NewScorecard(model.ScorecardConfig{
		Name:        "credit",
		Description: "test scorecard",
		Inputs: []model.InputSpec{
			{Name: "annual_income", Kind: valueobject.KindNumeric, Min: decimal.NewNullDecimal(decimal.Zero)},
			{Name: "repayment_history", Kind: valueobject.KindCategorical},
		},
		Categories: []model.CategorySpec{
			{Name: "financial", Weight: d(60), Blend: d(1), MaxSum: d(5), Attributes: []model.AttributeSpec{
				{Name: "annual_income", Input: "annual_income", Rule: model.LadderOf(ladder), Weight: d(1)},
			}},
			{Name: "credit_history", Weight: d(40), Blend: d(1), MaxSum: d(2), Attributes: []model.AttributeSpec{
				{Name: "repayment_history", Input: "repayment_history", Rule: model.LookupOf(lookup), Weight: d(1)},
			}},
		},
	})
	require.NoError(t, err)
	return card
}

func newRegistry(t *testing.T) *mockRegistry {
	t.Helper()
	return &mockRegistry{
		cards:       map[string]model.Scorecard{"credit": creditCard(t)},
		defaultName: "credit",
	}
}

func attrs(income float64, history string) map[string]valueobject.AttributeValue {
	return map[string]valueobject.AttributeValue{
		"annual_income":     valueobject.Numeric(income),
		"repayment_history": valueobject.Categorical(history),
	}
}
