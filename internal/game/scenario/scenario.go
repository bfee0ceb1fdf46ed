// Package scenario loads hand-written turn snapshots from YAML so kernel
// behaviour can be pinned by fixtures and replayed by the trace tool.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

// Record is the YAML form of one feed record.
type Record struct {
	ID         int    `yaml:"id"`
	Kind       string `yaml:"kind"`
	Delta      []int  `yaml:"delta"`
	Price      int    `yaml:"price"`
	TomeIndex  int    `yaml:"tome_index"`
	TaxCount   int    `yaml:"tax_count"`
	Castable   bool   `yaml:"castable"`
	Repeatable bool   `yaml:"repeatable"`
}

// Party is the YAML form of an inventory line.
type Party struct {
	Inventory []int `yaml:"inventory"`
	Score     int   `yaml:"score"`
}

// Scenario is one named turn snapshot with an optional expected action.
//
// Precondition: ID must be non-empty; every Delta and Inventory has four tiers.
type Scenario struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Records     []Record `yaml:"records"`
	Me          Party    `yaml:"me"`
	Opponent    Party    `yaml:"opponent"`
	// Expect is the wire form of the expected action, e.g. "BREW 44"; empty = unchecked.
	Expect string `yaml:"expect"`
}

// Validate checks required fields and vector widths.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return errors.New("scenario: ID must not be empty")
	}
	for _, r := range s.Records {
		if len(r.Delta) != recipe.Tiers {
			return fmt.Errorf("scenario %q record %d: delta must have %d tiers, got %d", s.ID, r.ID, recipe.Tiers, len(r.Delta))
		}
	}
	if n := len(s.Me.Inventory); n != 0 && n != recipe.Tiers {
		return fmt.Errorf("scenario %q: me.inventory must have %d tiers, got %d", s.ID, recipe.Tiers, n)
	}
	if n := len(s.Opponent.Inventory); n != 0 && n != recipe.Tiers {
		return fmt.Errorf("scenario %q: opponent.inventory must have %d tiers, got %d", s.ID, recipe.Tiers, n)
	}
	return nil
}

// ToTurn converts the scenario into the turn snapshot the kernel consumes.
//
// Precondition: s must have passed Validate; logger must not be nil.
func (s *Scenario) ToTurn(logger *zap.Logger) *recipe.Turn {
	records := make([]recipe.Record, 0, len(s.Records))
	for _, r := range s.Records {
		records = append(records, recipe.Record{
			ID:         r.ID,
			Kind:       r.Kind,
			Delta:      toVector(r.Delta),
			Price:      r.Price,
			TomeIndex:  r.TomeIndex,
			TaxCount:   r.TaxCount,
			Castable:   r.Castable,
			Repeatable: r.Repeatable,
		})
	}
	return &recipe.Turn{
		Catalog:  recipe.BuildCatalog(records, logger),
		Me:       recipe.Party{Inventory: toVector(s.Me.Inventory), Score: s.Me.Score},
		Opponent: recipe.Party{Inventory: toVector(s.Opponent.Inventory), Score: s.Opponent.Score},
	}
}

func toVector(tiers []int) recipe.Vector {
	var v recipe.Vector
	copy(v[:], tiers)
	return v
}

// yamlScenarioFile wraps the YAML top-level key.
type yamlScenarioFile struct {
	Scenarios []*Scenario `yaml:"scenarios"`
}

// LoadFile parses and validates every scenario in one YAML file.
//
// Postcondition: returns error if the file is unreadable, lacks the
// top-level 'scenarios' key, or any scenario fails Validate.
func LoadFile(path string) ([]*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario.LoadFile: reading %s: %w", path, err)
	}
	var f yamlScenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario.LoadFile: parsing %s: %w", path, err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario.LoadFile: %s has no 'scenarios' entries", path)
	}
	for _, s := range f.Scenarios {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("scenario.LoadFile: %s: %w", path, err)
		}
	}
	return f.Scenarios, nil
}

// LoadDir reads all *.yaml files from dir in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: scenario IDs are unique across the directory.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scenario.LoadDir: reading %q: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	var out []*Scenario
	seen := make(map[string]string)
	for _, p := range paths {
		scenarios, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		for _, s := range scenarios {
			if prev, dup := seen[s.ID]; dup {
				return nil, fmt.Errorf("scenario.LoadDir: duplicate scenario ID %q in %s and %s", s.ID, prev, p)
			}
			seen[s.ID] = p
		}
		out = append(out, scenarios...)
	}
	return out, nil
}
