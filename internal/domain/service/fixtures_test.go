package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ---------------------------------------------------------------------------
// Rule builders
// ---------------------------------------------------------------------------

func linearRule(t *testing.T, ref float64, inverted bool) model.Rule {
	t.Helper()
	r, err := model.NewLinearRule(d(ref), inverted)
	require.NoError(t, err)
	return model.LinearOf(r)
}

func lookupRule(t *testing.T, entries map[string]float64) model.Rule {
	t.Helper()
	m := make(map[string]decimal.Decimal, len(entries))
	for k, v := range entries {
		m[k] = d(v)
	}
	r, err := model.NewLookupRule(m, decimal.Zero)
	require.NoError(t, err)
	return model.LookupOf(r)
}

func ladderRule(t *testing.T, otherwise float64, steps ...model.LadderStep) model.Rule {
	t.Helper()
	r, err := model.NewLadderRule(steps, d(otherwise))
	require.NoError(t, err)
	return model.LadderOf(r)
}

func step(op model.Comparison, bound, score float64) model.LadderStep {
	return model.LadderStep{Op: op, Bound: d(bound), Score: d(score)}
}

func numeric(name string, lo, hi float64) model.InputSpec {
	return model.InputSpec{
		Name: name,
		Kind: valueobject.KindNumeric,
		Min:  decimal.NewNullDecimal(d(lo)),
		Max:  decimal.NewNullDecimal(d(hi)),
	}
}

func categorical(name string) model.InputSpec {
	return model.InputSpec{Name: name, Kind: valueobject.KindCategorical}
}

// ---------------------------------------------------------------------------
// Scorecards
// ---------------------------------------------------------------------------

func farmOperations(t *testing.T) model.Scorecard {
	t.Helper()
	sc, err := model.NewScorecard(model.ScorecardConfig{
		Name: "farm-operations",
		Inputs: []model.InputSpec{
			numeric("crop_management", 0, 100),
			numeric("income", 0, 30000),
			numeric("yield_efficiency", 0, 2000),
			numeric("record_keeping", 0, 100),
			numeric("farm_size", 0, 20),
			numeric("active_land", 0, 20),
			numeric("crop_type_score", 0, 100),
			numeric("irrigation_score", 0, 100),
			numeric("weather_risk", 0, 100),
			numeric("farm_inputs", 0, 100),
		},
		Categories: []model.CategorySpec{
			{
				Name: "experience", Weight: d(40), Blend: d(1), MaxSum: d(100),
				Attributes: []model.AttributeSpec{
					{Name: "crop_management", Input: "crop_management", Rule: linearRule(t, 100, false), Weight: d(0.3)},
					{Name: "income", Input: "income", Rule: linearRule(t, 30000, false), Weight: d(0.25)},
					{Name: "yield_efficiency", Input: "yield_efficiency", Rule: linearRule(t, 2000, false), Weight: d(0.25)},
					{Name: "record_keeping", Input: "record_keeping", Rule: linearRule(t, 100, false), Weight: d(0.2)},
				},
			},
			{
				Name: "farm_details", Weight: d(30), Blend: d(1), MaxSum: d(100),
				Attributes: []model.AttributeSpec{
					{Name: "land_utilization", Ratio: &model.RatioSource{Numerator: "active_land", Denominator: "farm_size"}, Rule: linearRule(t, 1, false), Weight: d(0.4)},
					{Name: "crop_type_score", Input: "crop_type_score", Rule: linearRule(t, 100, false), Weight: d(0.3)},
					{Name: "irrigation_score", Input: "irrigation_score", Rule: linearRule(t, 100, false), Weight: d(0.3)},
				},
			},
			{
				Name: "weather", Weight: d(20), Blend: d(0.2), MaxSum: d(20),
				Attributes: []model.AttributeSpec{
					{Name: "weather_risk", Input: "weather_risk", Rule: linearRule(t, 100, true), Weight: d(0.2)},
				},
			},
			{
				Name: "farm_inputs", Weight: d(10), Blend: d(0.1), MaxSum: d(10),
				Attributes: []model.AttributeSpec{
					{Name: "farm_inputs", Input: "farm_inputs", Rule: linearRule(t, 100, false), Weight: d(0.1)},
				},
			},
		},
	})
	require.NoError(t, err)
	return sc
}

func demographicFinancial(t *testing.T) model.Scorecard {
	t.Helper()
	one := d(1)
	sc, err := model.NewScorecard(model.ScorecardConfig{
		Name: "demographic-financial",
		Inputs: []model.InputSpec{
			numeric("age", 18, 100),
			categorical("marital_status"),
			categorical("education_level"),
			numeric("farming_experience", 0, 80),
			categorical("sacco_membership"),
			numeric("annual_income", 0, 1e9),
			numeric("loan_amount", 0, 1e9),
			numeric("savings_contributions", 0, 1e9),
			categorical("repayment_history"),
			categorical("sacco_contribution_frequency"),
			categorical("weather_risks"),
		},
		Categories: []model.CategorySpec{
			{
				Name: "demographic", Weight: d(26.50), Blend: one, MaxSum: d(28),
				Attributes: []model.AttributeSpec{
					{Name: "age", Input: "age", Weight: one, Rule: ladderRule(t, 2,
						step(model.AtMost, 25, 2), step(model.AtMost, 40, 5), step(model.AtMost, 60, 4))},
					{Name: "marital_status", Input: "marital_status", Weight: one, Rule: lookupRule(t,
						map[string]float64{"Single": 2, "Married": 4, "Divorced": 1, "Widowed": 1})},
					{Name: "education_level", Input: "education_level", Weight: one, Rule: lookupRule(t,
						map[string]float64{"None": 1, "Primary School": 2, "Secondary School": 3, "Higher Education": 7})},
					{Name: "farming_experience", Input: "farming_experience", Weight: one, Rule: ladderRule(t, 7,
						step(model.AtMost, 2, 2), step(model.AtMost, 5, 4), step(model.AtMost, 10, 6))},
					{Name: "sacco_membership", Input: "sacco_membership", Weight: one, Rule: lookupRule(t,
						map[string]float64{"No": 0, "Yes": 5})},
				},
			},
			{
				Name: "financial", Weight: d(31.45), Blend: one, MaxSum: d(15),
				Attributes: []model.AttributeSpec{
					{Name: "annual_income", Input: "annual_income", Weight: one, Rule: ladderRule(t, 5,
						step(model.LessThan, 200000, 1), step(model.AtMost, 1000000, 3))},
					{Name: "loan_to_income_ratio", Ratio: &model.RatioSource{Numerator: "loan_amount", Denominator: "annual_income"}, Weight: one,
						Rule: ladderRule(t, 5, step(model.GreaterThan, 0.70, 1), step(model.AtLeast, 0.31, 3))},
					{Name: "savings_contributions", Input: "savings_contributions", Weight: one, Rule: ladderRule(t, 5,
						step(model.LessThan, 10000, 1), step(model.AtMost, 50000, 3))},
				},
			},
			{
				Name: "loan_details", Weight: d(12.58), Blend: one, MaxSum: d(1),
				Attributes: []model.AttributeSpec{
					{Name: "loan_amount", Input: "loan_amount", Weight: one, Rule: ladderRule(t, 1,
						step(model.GreaterThan, 1000000, 0.5), step(model.GreaterThan, 500000, 0.75))},
				},
			},
			{
				Name: "credit_history", Weight: d(12.58), Blend: one, MaxSum: d(2),
				Attributes: []model.AttributeSpec{
					{Name: "repayment_history", Input: "repayment_history", Weight: one, Rule: lookupRule(t,
						map[string]float64{"Good": 2, "Fair": 1, "Poor": 0.5})},
				},
			},
			{
				Name: "behavioral", Weight: d(9.93), Blend: one, MaxSum: d(3),
				Attributes: []model.AttributeSpec{
					{Name: "sacco_contribution_frequency", Input: "sacco_contribution_frequency", Weight: one, Rule: lookupRule(t,
						map[string]float64{"Annually": 1, "Semi-Annually": 2, "Monthly": 3})},
				},
			},
			{
				Name: "external_factors", Weight: d(6.96), Blend: one, MaxSum: d(3),
				Attributes: []model.AttributeSpec{
					{Name: "weather_risks", Input: "weather_risks", Weight: one, Rule: lookupRule(t,
						map[string]float64{"High": 1, "Moderate": 2, "Low": 3})},
				},
			},
		},
	})
	require.NoError(t, err)
	return sc
}

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

func farmOperationsRecord() valueobject.InputRecord {
	return valueobject.NewInputRecord(map[string]valueobject.AttributeValue{
		"income":           valueobject.Numeric(10000),
		"yield_efficiency": valueobject.Numeric(1000),
		"crop_management":  valueobject.Numeric(50),
		"record_keeping":   valueobject.Numeric(50),
		"farm_size":        valueobject.Numeric(5),
		"active_land":      valueobject.Numeric(5),
		"crop_type_score":  valueobject.Numeric(65),
		"irrigation_score": valueobject.Numeric(50),
		"farm_inputs":      valueobject.Numeric(50),
		"weather_risk":     valueobject.Numeric(50),
	})
}

func demographicRecord() valueobject.InputRecord {
	return valueobject.NewInputRecord(map[string]valueobject.AttributeValue{
		"age":                          valueobject.Numeric(30),
		"marital_status":               valueobject.Categorical("Married"),
		"education_level":              valueobject.Categorical("Secondary School"),
		"farming_experience":           valueobject.Numeric(8),
		"sacco_membership":             valueobject.Categorical("Yes"),
		"annual_income":                valueobject.Numeric(600000),
		"loan_amount":                  valueobject.Numeric(150000),
		"savings_contributions":        valueobject.Numeric(30000),
		"repayment_history":            valueobject.Categorical("Good"),
		"sacco_contribution_frequency": valueobject.Categorical("Monthly"),
		"weather_risks":                valueobject.Categorical("Moderate"),
	})
}

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type dataQualityWarning struct {
	Scorecard string
	Attribute string
	Reason    model.FallbackReason
}

type mockRecorder struct {
	mu       sync.Mutex
	warnings []dataQualityWarning
}

func (m *mockRecorder) RecordDataQualityWarning(_ context.Context, scorecard, attribute string, reason model.FallbackReason) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, dataQualityWarning{scorecard, attribute, reason})
}
