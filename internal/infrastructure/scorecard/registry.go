package scorecard

import (
	"fmt"
	"sort"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
)

// Registry is an immutable, in-memory set of validated scorecards. It
// implements port.ScorecardRegistry.
type Registry struct {
	cards       map[string]model.Scorecard
	names       []string
	defaultName string
}

// NewRegistry indexes cards by name. It fails on duplicate names or when
// defaultName is not among them.
func NewRegistry(defaultName string, cards ...model.Scorecard) (*Registry, error) {
	r := &Registry{
		cards:       make(map[string]model.Scorecard, len(cards)),
		defaultName: defaultName,
	}
	for _, c := range cards {
		if _, dup := r.cards[c.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate scorecard %q", model.ErrWeightTableMisconfiguration, c.Name())
		}
		r.cards[c.Name()] = c
		r.names = append(r.names, c.Name())
	}
	sort.Strings(r.names)

	if _, ok := r.cards[defaultName]; !ok {
		return nil, fmt.Errorf("default %w: %q", model.ErrScorecardNotFound, defaultName)
	}
	return r, nil
}

// Load builds a registry from the built-in scorecards plus any found in dir.
// An empty dir loads only the built-ins.
func Load(defaultName, dir string) (*Registry, error) {
	cards, err := LoadBuiltin()
	if err != nil {
		return nil, fmt.Errorf("load builtin scorecards: %w", err)
	}
	if dir != "" {
		extra, err := LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("load scorecards from %s: %w", dir, err)
		}
		cards = append(cards, extra...)
	}
	return NewRegistry(defaultName, cards...)
}

func (r *Registry) Get(name string) (model.Scorecard, error) {
	c, ok := r.cards[name]
	if !ok {
		return model.Scorecard{}, fmt.Errorf("%w: %q", model.ErrScorecardNotFound, name)
	}
	return c, nil
}

// Names returns the scorecard names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) Default() string { return r.defaultName }
