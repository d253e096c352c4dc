package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

// Tolerance is the allowed drift when checking weight sums and declared
// category maxima.
var Tolerance = decimal.New(1, -9)

// ---------------------------------------------------------------------------
// Configuration inputs
// ---------------------------------------------------------------------------

// InputSpec declares a raw attribute the caller must supply.
type InputSpec struct {
	Name string
	Kind valueobject.ValueKind
	Min  decimal.NullDecimal
	Max  decimal.NullDecimal
}

// RatioSource derives a numeric value from two numeric inputs.
type RatioSource struct {
	Numerator   string
	Denominator string
}

// AttributeSpec is one scored attribute inside a category. Exactly one of
// Input or Ratio must be set.
type AttributeSpec struct {
	Name     string
	Category string
	Input    string
	Ratio    *RatioSource
	Rule     Rule
	Weight   decimal.Decimal
}

// MaxSubScore is the largest weighted sub-score the attribute can contribute.
func (a AttributeSpec) MaxSubScore() decimal.Decimal {
	return a.Rule.Max().Mul(a.Weight)
}

// Sources lists the raw inputs the attribute reads.
func (a AttributeSpec) Sources() []string {
	if a.Ratio != nil {
		return []string{a.Ratio.Numerator, a.Ratio.Denominator}
	}
	return []string{a.Input}
}

// CategorySpec groups attributes under one weight. The category contributes
// Weight * Blend * (sum of sub-scores) / MaxSum to the final score.
type CategorySpec struct {
	Name       string
	Weight     decimal.Decimal
	Blend      decimal.Decimal
	MaxSum     decimal.Decimal
	Attributes []AttributeSpec
}

// TierBand assigns Tier to scores above the previous band's Upper and up to
// and including this Upper.
type TierBand struct {
	Tier  valueobject.Tier
	Upper decimal.Decimal
}

// DefaultTierBands are the standard cut points: <=50 high risk, <=70 medium,
// above 70 low.
func DefaultTierBands() []TierBand {
	return []TierBand{
		{Tier: valueobject.TierHighRisk, Upper: decimal.NewFromInt(50)},
		{Tier: valueobject.TierMediumRisk, Upper: decimal.NewFromInt(70)},
		{Tier: valueobject.TierLowRisk, Upper: hundred},
	}
}

// ScorecardConfig is the unvalidated description of a scorecard variant.
type ScorecardConfig struct {
	Name        string
	Description string
	Inputs      []InputSpec
	Categories  []CategorySpec
	Tiers       []TierBand
}

// ---------------------------------------------------------------------------
// Scorecard
// ---------------------------------------------------------------------------

// Scorecard is an immutable, validated weight table.
type Scorecard struct {
	name        string
	description string
	inputs      []InputSpec
	inputIndex  map[string]int
	categories  []CategorySpec
	tiers       []TierBand
}

// NewScorecard validates cfg and returns the immutable scorecard. Every
// failure wraps ErrWeightTableMisconfiguration.
func NewScorecard(cfg ScorecardConfig) (Scorecard, error) {
	if cfg.Name == "" {
		return Scorecard{}, misconfigured("scorecard name is required")
	}

	sc := Scorecard{
		name:        cfg.Name,
		description: cfg.Description,
		inputIndex:  make(map[string]int, len(cfg.Inputs)),
	}

	for _, in := range cfg.Inputs {
		if err := validateInput(in); err != nil {
			return Scorecard{}, misconfigured("scorecard %q: %v", cfg.Name, err)
		}
		if _, dup := sc.inputIndex[in.Name]; dup {
			return Scorecard{}, misconfigured("scorecard %q: duplicate input %q", cfg.Name, in.Name)
		}
		sc.inputIndex[in.Name] = len(sc.inputs)
		sc.inputs = append(sc.inputs, in)
	}

	if len(cfg.Categories) == 0 {
		return Scorecard{}, misconfigured("scorecard %q: no categories", cfg.Name)
	}

	weightSum := decimal.Zero
	seenCategory := make(map[string]bool, len(cfg.Categories))
	seenAttribute := make(map[string]bool)
	for _, c := range cfg.Categories {
		if c.Name == "" {
			return Scorecard{}, misconfigured("scorecard %q: category name is required", cfg.Name)
		}
		if seenCategory[c.Name] {
			return Scorecard{}, misconfigured("scorecard %q: duplicate category %q", cfg.Name, c.Name)
		}
		seenCategory[c.Name] = true

		cat, err := sc.validateCategory(c, seenAttribute)
		if err != nil {
			return Scorecard{}, misconfigured("scorecard %q: category %q: %v", cfg.Name, c.Name, err)
		}
		weightSum = weightSum.Add(cat.Weight)
		sc.categories = append(sc.categories, cat)
	}
	if weightSum.Sub(hundred).Abs().GreaterThan(Tolerance) {
		return Scorecard{}, misconfigured("scorecard %q: category weights sum to %s, want 100", cfg.Name, weightSum)
	}

	tiers := cfg.Tiers
	if len(tiers) == 0 {
		tiers = DefaultTierBands()
	}
	if err := validateTiers(tiers); err != nil {
		return Scorecard{}, misconfigured("scorecard %q: %v", cfg.Name, err)
	}
	sc.tiers = append([]TierBand(nil), tiers...)

	return sc, nil
}

func validateInput(in InputSpec) error {
	if in.Name == "" {
		return fmt.Errorf("input name is required")
	}
	if _, err := valueobject.ParseValueKind(string(in.Kind)); err != nil {
		return fmt.Errorf("input %q: %v", in.Name, err)
	}
	if in.Kind == valueobject.KindCategorical && (in.Min.Valid || in.Max.Valid) {
		return fmt.Errorf("input %q: categorical inputs take no numeric domain", in.Name)
	}
	if in.Min.Valid && in.Max.Valid && in.Min.Decimal.GreaterThan(in.Max.Decimal) {
		return fmt.Errorf("input %q: min %s exceeds max %s", in.Name, in.Min.Decimal, in.Max.Decimal)
	}
	return nil
}

func (sc *Scorecard) validateCategory(c CategorySpec, seen map[string]bool) (CategorySpec, error) {
	if c.Weight.IsNegative() {
		return CategorySpec{}, fmt.Errorf("weight must not be negative")
	}
	if !c.Blend.IsPositive() || c.Blend.GreaterThan(decimal.NewFromInt(1)) {
		return CategorySpec{}, fmt.Errorf("blend %s outside (0, 1]", c.Blend)
	}
	if len(c.Attributes) == 0 {
		return CategorySpec{}, fmt.Errorf("no attributes")
	}
	if !c.MaxSum.IsPositive() {
		return CategorySpec{}, fmt.Errorf("max sum must be positive")
	}

	out := c
	out.Attributes = make([]AttributeSpec, 0, len(c.Attributes))
	maxSum := decimal.Zero
	for _, a := range c.Attributes {
		if a.Name == "" {
			return CategorySpec{}, fmt.Errorf("attribute name is required")
		}
		if seen[a.Name] {
			return CategorySpec{}, fmt.Errorf("duplicate attribute %q", a.Name)
		}
		seen[a.Name] = true

		a.Category = c.Name
		if err := sc.validateAttribute(a); err != nil {
			return CategorySpec{}, fmt.Errorf("attribute %q: %v", a.Name, err)
		}
		if a.Ratio != nil {
			r := *a.Ratio
			a.Ratio = &r
		}
		maxSum = maxSum.Add(a.MaxSubScore())
		out.Attributes = append(out.Attributes, a)
	}

	if maxSum.Sub(c.MaxSum).Abs().GreaterThan(Tolerance) {
		return CategorySpec{}, fmt.Errorf("declared max sum %s does not match attribute maxima %s", c.MaxSum, maxSum)
	}
	return out, nil
}

func (sc *Scorecard) validateAttribute(a AttributeSpec) error {
	if a.Rule.Kind() == "" {
		return fmt.Errorf("rule is required")
	}
	if !a.Weight.IsPositive() {
		return fmt.Errorf("weight must be positive")
	}
	switch {
	case a.Input != "" && a.Ratio != nil:
		return fmt.Errorf("input and ratio are mutually exclusive")
	case a.Input == "" && a.Ratio == nil:
		return fmt.Errorf("one of input or ratio is required")
	case a.Ratio != nil && a.Rule.InputKind() != valueobject.KindNumeric:
		return fmt.Errorf("ratio attributes need a numeric rule, got %s", a.Rule.Kind())
	}

	for _, src := range a.Sources() {
		in, ok := sc.Input(src)
		if !ok {
			return fmt.Errorf("unknown input %q", src)
		}
		want := a.Rule.InputKind()
		if a.Ratio != nil {
			want = valueobject.KindNumeric
		}
		if in.Kind != want {
			return fmt.Errorf("input %q is %s but %s rule needs %s", src, in.Kind, a.Rule.Kind(), want)
		}
	}
	return nil
}

func validateTiers(bands []TierBand) error {
	seen := make(map[string]bool, len(bands))
	prev := decimal.Zero
	for i, b := range bands {
		if b.Tier.IsZero() {
			return fmt.Errorf("tier band %d: tier is required", i)
		}
		if seen[b.Tier.String()] {
			return fmt.Errorf("tier band %d: duplicate tier %s", i, b.Tier)
		}
		seen[b.Tier.String()] = true
		if !b.Upper.GreaterThan(prev) {
			return fmt.Errorf("tier band %d: upper bound %s must exceed %s", i, b.Upper, prev)
		}
		prev = b.Upper
	}
	if !prev.Equal(hundred) {
		return fmt.Errorf("last tier band must end at 100, ends at %s", prev)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (sc Scorecard) Name() string        { return sc.name }
func (sc Scorecard) Description() string { return sc.description }
func (sc Scorecard) IsZero() bool        { return sc.name == "" }

// Inputs returns the declared raw inputs in declaration order.
func (sc Scorecard) Inputs() []InputSpec {
	return append([]InputSpec(nil), sc.inputs...)
}

// Input looks up a declared raw input by name.
func (sc Scorecard) Input(name string) (InputSpec, bool) {
	i, ok := sc.inputIndex[name]
	if !ok {
		return InputSpec{}, false
	}
	return sc.inputs[i], true
}

// InputNames returns the declared input names sorted alphabetically.
func (sc Scorecard) InputNames() []string {
	names := make([]string, 0, len(sc.inputs))
	for _, in := range sc.inputs {
		names = append(names, in.Name)
	}
	sort.Strings(names)
	return names
}

// Categories returns the categories in declaration order.
func (sc Scorecard) Categories() []CategorySpec {
	out := make([]CategorySpec, len(sc.categories))
	for i, c := range sc.categories {
		out[i] = c
		out[i].Attributes = append([]AttributeSpec(nil), c.Attributes...)
	}
	return out
}

// Attributes returns every scored attribute in declaration order.
func (sc Scorecard) Attributes() []AttributeSpec {
	var out []AttributeSpec
	for _, c := range sc.categories {
		out = append(out, c.Attributes...)
	}
	return out
}

// Tiers returns the tier bands in ascending order.
func (sc Scorecard) Tiers() []TierBand {
	return append([]TierBand(nil), sc.tiers...)
}

// MaxScore is the highest total the scorecard can produce.
func (sc Scorecard) MaxScore() decimal.Decimal {
	total := decimal.Zero
	for _, c := range sc.categories {
		total = total.Add(c.Weight.Mul(c.Blend))
	}
	return total
}
