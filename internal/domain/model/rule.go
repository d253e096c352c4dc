package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// RuleKind names a normalization rule.
type RuleKind string

const (
	RuleLookup RuleKind = "lookup"
	RuleLadder RuleKind = "ladder"
	RuleLinear RuleKind = "linear"
)

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

// LookupRule maps a categorical key to a sub-score.
type LookupRule struct {
	entries  map[string]decimal.Decimal
	fallback decimal.Decimal
}

// NewLookupRule builds a lookup table. fallback is used for unknown keys.
func NewLookupRule(entries map[string]decimal.Decimal, fallback decimal.Decimal) (LookupRule, error) {
	if len(entries) == 0 {
		return LookupRule{}, fmt.Errorf("lookup rule needs at least one entry")
	}
	if fallback.IsNegative() {
		return LookupRule{}, fmt.Errorf("lookup default must not be negative")
	}
	copied := make(map[string]decimal.Decimal, len(entries))
	for k, v := range entries {
		if v.IsNegative() {
			return LookupRule{}, fmt.Errorf("lookup entry %q must not be negative", k)
		}
		copied[k] = v
	}
	return LookupRule{entries: copied, fallback: fallback}, nil
}

// Entry returns the score for key; ok is false when the key is unknown.
func (r LookupRule) Entry(key string) (decimal.Decimal, bool) {
	v, ok := r.entries[key]
	return v, ok
}

// Default returns the score used for unknown keys.
func (r LookupRule) Default() decimal.Decimal { return r.fallback }

// Keys returns the known keys in sorted order.
func (r LookupRule) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r LookupRule) max() decimal.Decimal {
	m := r.fallback
	for _, v := range r.entries {
		m = decimal.Max(m, v)
	}
	return m
}

// ---------------------------------------------------------------------------
// Ladder
// ---------------------------------------------------------------------------

// Comparison is the operator a ladder step applies as `value OP bound`.
type Comparison string

const (
	LessThan    Comparison = "<"
	AtMost      Comparison = "<="
	GreaterThan Comparison = ">"
	AtLeast     Comparison = ">="
)

// ParseComparison validates an operator.
func ParseComparison(s string) (Comparison, error) {
	switch c := Comparison(s); c {
	case LessThan, AtMost, GreaterThan, AtLeast:
		return c, nil
	default:
		return "", fmt.Errorf("invalid ladder operator %q", s)
	}
}

// Holds evaluates `v OP bound`.
func (c Comparison) Holds(v, bound decimal.Decimal) bool {
	switch c {
	case LessThan:
		return v.LessThan(bound)
	case AtMost:
		return v.LessThanOrEqual(bound)
	case GreaterThan:
		return v.GreaterThan(bound)
	case AtLeast:
		return v.GreaterThanOrEqual(bound)
	default:
		return false
	}
}

func (c Comparison) ascending() bool { return c == LessThan || c == AtMost }

// LadderStep is one breakpoint of a threshold ladder.
type LadderStep struct {
	Op    Comparison
	Bound decimal.Decimal
	Score decimal.Decimal
}

// LadderRule is a piecewise-constant step function. Steps are tried in order
// and the first one whose comparison holds wins; Otherwise applies when none
// does.
type LadderRule struct {
	steps     []LadderStep
	otherwise decimal.Decimal
}

// NewLadderRule validates that every step points the same way and that the
// bounds move monotonically in that direction.
func NewLadderRule(steps []LadderStep, otherwise decimal.Decimal) (LadderRule, error) {
	if len(steps) == 0 {
		return LadderRule{}, fmt.Errorf("ladder rule needs at least one step")
	}
	if otherwise.IsNegative() {
		return LadderRule{}, fmt.Errorf("ladder otherwise score must not be negative")
	}

	ascending := steps[0].Op.ascending()
	for i, s := range steps {
		if _, err := ParseComparison(string(s.Op)); err != nil {
			return LadderRule{}, fmt.Errorf("step %d: %w", i, err)
		}
		if s.Score.IsNegative() {
			return LadderRule{}, fmt.Errorf("step %d: score must not be negative", i)
		}
		if s.Op.ascending() != ascending {
			return LadderRule{}, fmt.Errorf("step %d: ladder mixes ascending and descending operators", i)
		}
		if i == 0 {
			continue
		}
		prev := steps[i-1].Bound
		if ascending && s.Bound.LessThan(prev) {
			return LadderRule{}, fmt.Errorf("step %d: bound %s below previous bound %s", i, s.Bound, prev)
		}
		if !ascending && s.Bound.GreaterThan(prev) {
			return LadderRule{}, fmt.Errorf("step %d: bound %s above previous bound %s", i, s.Bound, prev)
		}
	}

	copied := make([]LadderStep, len(steps))
	copy(copied, steps)
	return LadderRule{steps: copied, otherwise: otherwise}, nil
}

// Steps returns a copy of the breakpoints.
func (r LadderRule) Steps() []LadderStep {
	copied := make([]LadderStep, len(r.steps))
	copy(copied, r.steps)
	return copied
}

// Otherwise returns the score used when no step matches.
func (r LadderRule) Otherwise() decimal.Decimal { return r.otherwise }

// Descending reports whether the ladder rewards lower values.
func (r LadderRule) Descending() bool { return !r.steps[0].Op.ascending() }

func (r LadderRule) max() decimal.Decimal {
	m := r.otherwise
	for _, s := range r.steps {
		m = decimal.Max(m, s.Score)
	}
	return m
}

// ---------------------------------------------------------------------------
// Linear
// ---------------------------------------------------------------------------

// LinearRule rescales [0, reference] onto [0, 100]. Inverted rules map 0 to
// 100 and reference to 0.
type LinearRule struct {
	reference decimal.Decimal
	inverted  bool
}

// NewLinearRule validates the reference constant.
func NewLinearRule(reference decimal.Decimal, inverted bool) (LinearRule, error) {
	if !reference.IsPositive() {
		return LinearRule{}, fmt.Errorf("linear reference must be positive, got %s", reference)
	}
	return LinearRule{reference: reference, inverted: inverted}, nil
}

// Reference returns the value that maps to 100 (or 0 when inverted).
func (r LinearRule) Reference() decimal.Decimal { return r.reference }

// Inverted reports whether lower values score higher.
func (r LinearRule) Inverted() bool { return r.inverted }

// ---------------------------------------------------------------------------
// Rule – tagged union of the three normalizations
// ---------------------------------------------------------------------------

// Rule is exactly one of LookupRule, LadderRule or LinearRule.
type Rule struct {
	kind   RuleKind
	lookup LookupRule
	ladder LadderRule
	linear LinearRule
}

// LookupOf wraps a lookup rule.
func LookupOf(r LookupRule) Rule { return Rule{kind: RuleLookup, lookup: r} }

// LadderOf wraps a ladder rule.
func LadderOf(r LadderRule) Rule { return Rule{kind: RuleLadder, ladder: r} }

// LinearOf wraps a linear rule.
func LinearOf(r LinearRule) Rule { return Rule{kind: RuleLinear, linear: r} }

// Kind returns which normalization the rule applies.
func (r Rule) Kind() RuleKind { return r.kind }

// Lookup returns the lookup rule when Kind is RuleLookup.
func (r Rule) Lookup() (LookupRule, bool) { return r.lookup, r.kind == RuleLookup }

// Ladder returns the ladder rule when Kind is RuleLadder.
func (r Rule) Ladder() (LadderRule, bool) { return r.ladder, r.kind == RuleLadder }

// Linear returns the linear rule when Kind is RuleLinear.
func (r Rule) Linear() (LinearRule, bool) { return r.linear, r.kind == RuleLinear }

// InputKind is the kind of raw value the rule consumes.
func (r Rule) InputKind() valueobject.ValueKind {
	if r.kind == RuleLookup {
		return valueobject.KindCategorical
	}
	return valueobject.KindNumeric
}

// Max returns the largest value the rule can produce before weighting.
func (r Rule) Max() decimal.Decimal {
	switch r.kind {
	case RuleLookup:
		return r.lookup.max()
	case RuleLadder:
		return r.ladder.max()
	case RuleLinear:
		return hundred
	default:
		return decimal.Zero
	}
}
