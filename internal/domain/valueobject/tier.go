package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// Tier – immutable value object
// ---------------------------------------------------------------------------

// Tier is a credit risk tier. The set is closed and ordered from the safest
// (Low Risk, grade A) to the riskiest (High Risk, grade C).
type Tier struct {
	value string
	label string
	grade string
	rank  int
}

const (
	tierLowRisk    = "LOW_RISK"
	tierMediumRisk = "MEDIUM_RISK"
	tierHighRisk   = "HIGH_RISK"
)

var (
	TierLowRisk    = Tier{value: tierLowRisk, label: "Low Risk", grade: "A", rank: 1}
	TierMediumRisk = Tier{value: tierMediumRisk, label: "Medium Risk", grade: "B", rank: 2}
	TierHighRisk   = Tier{value: tierHighRisk, label: "High Risk", grade: "C", rank: 3}
)

var validTiers = map[string]Tier{
	tierLowRisk:    TierLowRisk,
	tierMediumRisk: TierMediumRisk,
	tierHighRisk:   TierHighRisk,
}

// NewTier creates a Tier from its code ("LOW_RISK", "MEDIUM_RISK", "HIGH_RISK").
func NewTier(s string) (Tier, error) {
	v, ok := validTiers[s]
	if !ok {
		return Tier{}, fmt.Errorf("invalid risk tier: %q", s)
	}
	return v, nil
}

// AllTiers returns every tier, safest first.
func AllTiers() []Tier {
	return []Tier{TierLowRisk, TierMediumRisk, TierHighRisk}
}

// String returns the tier code.
func (t Tier) String() string { return t.value }

// Label returns the display label with its letter grade, e.g. "High Risk (C)".
func (t Tier) Label() string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", t.label, t.grade)
}

// Grade returns the letter grade (A, B or C).
func (t Tier) Grade() string { return t.grade }

// RiskierThan reports whether t carries more risk than other.
func (t Tier) RiskierThan(other Tier) bool { return t.rank > other.rank }

// IsZero returns true if the tier has not been initialised.
func (t Tier) IsZero() bool { return t.value == "" }

// Equal returns true when both tiers carry the same value.
func (t Tier) Equal(other Tier) bool { return t.value == other.value }
