// Package scorecard loads declarative scorecard definitions and serves them
// from an in-memory registry.
package scorecard

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

//go:embed definitions/*.yaml
var builtin embed.FS

// ---------------------------------------------------------------------------
// YAML document shape
// ---------------------------------------------------------------------------

type document struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Inputs      []inputDoc    `yaml:"inputs"`
	Categories  []categoryDoc `yaml:"categories"`
	Tiers       []tierDoc     `yaml:"tiers"`
}

type inputDoc struct {
	Name string           `yaml:"name"`
	Kind string           `yaml:"kind"`
	Min  *decimal.Decimal `yaml:"min"`
	Max  *decimal.Decimal `yaml:"max"`
}

type categoryDoc struct {
	Name       string           `yaml:"name"`
	Weight     decimal.Decimal  `yaml:"weight"`
	Blend      *decimal.Decimal `yaml:"blend"`
	MaxSum     decimal.Decimal  `yaml:"max_sum"`
	Attributes []attributeDoc   `yaml:"attributes"`
}

type attributeDoc struct {
	Name   string           `yaml:"name"`
	Input  string           `yaml:"input"`
	Ratio  *ratioDoc        `yaml:"ratio"`
	Weight *decimal.Decimal `yaml:"weight"`
	Rule   ruleDoc          `yaml:"rule"`
}

type ratioDoc struct {
	Numerator   string `yaml:"numerator"`
	Denominator string `yaml:"denominator"`
}

type ruleDoc struct {
	Lookup *lookupDoc `yaml:"lookup"`
	Ladder *ladderDoc `yaml:"ladder"`
	Linear *linearDoc `yaml:"linear"`
}

type lookupDoc struct {
	Entries map[string]decimal.Decimal `yaml:"entries"`
	Default decimal.Decimal            `yaml:"default"`
}

type ladderDoc struct {
	Steps     []stepDoc       `yaml:"steps"`
	Otherwise decimal.Decimal `yaml:"otherwise"`
}

type stepDoc struct {
	Op    string          `yaml:"op"`
	Bound decimal.Decimal `yaml:"bound"`
	Score decimal.Decimal `yaml:"score"`
}

type linearDoc struct {
	Reference decimal.Decimal `yaml:"reference"`
	Inverted  bool            `yaml:"inverted"`
}

type tierDoc struct {
	Tier  string          `yaml:"tier"`
	Upper decimal.Decimal `yaml:"upper"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Parse decodes and validates a single YAML scorecard. Unknown fields are
// rejected. Every failure wraps model.ErrWeightTableMisconfiguration.
func Parse(data []byte) (model.Scorecard, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Scorecard{}, fmt.Errorf("%w: empty scorecard document", model.ErrWeightTableMisconfiguration)
		}
		return model.Scorecard{}, fmt.Errorf("%w: decode yaml: %v", model.ErrWeightTableMisconfiguration, err)
	}

	cfg, err := doc.toConfig()
	if err != nil {
		return model.Scorecard{}, fmt.Errorf("%w: scorecard %q: %v", model.ErrWeightTableMisconfiguration, doc.Name, err)
	}
	return model.NewScorecard(cfg)
}

// LoadBuiltin returns the scorecards compiled into the binary.
func LoadBuiltin() ([]model.Scorecard, error) {
	return loadFS(builtin, "definitions")
}

// LoadDir reads every *.yaml and *.yml file in dir.
func LoadDir(dir string) ([]model.Scorecard, error) {
	return loadFS(os.DirFS(dir), ".")
}

func loadFS(fsys fs.FS, dir string) ([]model.Scorecard, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	cards := make([]model.Scorecard, 0, len(files))
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		card, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

func (doc document) toConfig() (model.ScorecardConfig, error) {
	cfg := model.ScorecardConfig{
		Name:        doc.Name,
		Description: doc.Description,
	}

	for _, in := range doc.Inputs {
		kind, err := valueobject.ParseValueKind(in.Kind)
		if err != nil {
			return model.ScorecardConfig{}, fmt.Errorf("input %q: %w", in.Name, err)
		}
		spec := model.InputSpec{Name: in.Name, Kind: kind}
		if in.Min != nil {
			spec.Min = decimal.NewNullDecimal(*in.Min)
		}
		if in.Max != nil {
			spec.Max = decimal.NewNullDecimal(*in.Max)
		}
		cfg.Inputs = append(cfg.Inputs, spec)
	}

	for _, c := range doc.Categories {
		cat := model.CategorySpec{
			Name:   c.Name,
			Weight: c.Weight,
			Blend:  decimal.NewFromInt(1),
			MaxSum: c.MaxSum,
		}
		if c.Blend != nil {
			cat.Blend = *c.Blend
		}
		for _, a := range c.Attributes {
			attr, err := a.toSpec()
			if err != nil {
				return model.ScorecardConfig{}, fmt.Errorf("category %q: attribute %q: %w", c.Name, a.Name, err)
			}
			cat.Attributes = append(cat.Attributes, attr)
		}
		cfg.Categories = append(cfg.Categories, cat)
	}

	for _, t := range doc.Tiers {
		tier, err := valueobject.NewTier(t.Tier)
		if err != nil {
			return model.ScorecardConfig{}, err
		}
		cfg.Tiers = append(cfg.Tiers, model.TierBand{Tier: tier, Upper: t.Upper})
	}
	return cfg, nil
}

func (a attributeDoc) toSpec() (model.AttributeSpec, error) {
	spec := model.AttributeSpec{
		Name:   a.Name,
		Input:  a.Input,
		Weight: decimal.NewFromInt(1),
	}
	if a.Weight != nil {
		spec.Weight = *a.Weight
	}
	if a.Ratio != nil {
		spec.Ratio = &model.RatioSource{Numerator: a.Ratio.Numerator, Denominator: a.Ratio.Denominator}
	} else if spec.Input == "" {
		spec.Input = a.Name
	}

	rule, err := a.Rule.toRule()
	if err != nil {
		return model.AttributeSpec{}, err
	}
	spec.Rule = rule
	return spec, nil
}

func (r ruleDoc) toRule() (model.Rule, error) {
	set := 0
	for _, present := range []bool{r.Lookup != nil, r.Ladder != nil, r.Linear != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return model.Rule{}, fmt.Errorf("exactly one of lookup, ladder or linear is required, got %d", set)
	}

	switch {
	case r.Lookup != nil:
		lookup, err := model.NewLookupRule(r.Lookup.Entries, r.Lookup.Default)
		if err != nil {
			return model.Rule{}, err
		}
		return model.LookupOf(lookup), nil
	case r.Ladder != nil:
		steps := make([]model.LadderStep, 0, len(r.Ladder.Steps))
		for i, s := range r.Ladder.Steps {
			op, err := model.ParseComparison(s.Op)
			if err != nil {
				return model.Rule{}, fmt.Errorf("step %d: %w", i, err)
			}
			steps = append(steps, model.LadderStep{Op: op, Bound: s.Bound, Score: s.Score})
		}
		ladder, err := model.NewLadderRule(steps, r.Ladder.Otherwise)
		if err != nil {
			return model.Rule{}, err
		}
		return model.LadderOf(ladder), nil
	default:
		linear, err := model.NewLinearRule(r.Linear.Reference, r.Linear.Inverted)
		if err != nil {
			return model.Rule{}, err
		}
		return model.LinearOf(linear), nil
	}
}
