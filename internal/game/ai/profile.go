package ai

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Profile is a named kernel strategy: which scorer ranks potions and which
// policy applies when the bridging spell is on cooldown.
//
// Precondition: ID and Scorer must be non-empty.
type Profile struct {
	ID            string `yaml:"id"`
	Description   string `yaml:"description"`
	Scorer        string `yaml:"scorer"`
	SurplusWeight int    `yaml:"surplus_weight"`
	Uncastable    string `yaml:"uncastable"`
}

// Validate checks required fields.
//
// Postcondition: nil return guarantees non-empty ID and Scorer, a
// non-negative SurplusWeight, and an Uncastable value of "rest", "cast", or empty.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return errors.New("ai.Profile: ID must not be empty")
	}
	if p.Scorer == "" {
		return fmt.Errorf("ai.Profile %q: scorer must not be empty", p.ID)
	}
	if p.SurplusWeight < 0 {
		return fmt.Errorf("ai.Profile %q: surplus_weight must be >= 0, got %d", p.ID, p.SurplusWeight)
	}
	if p.Uncastable != "" {
		if _, err := ParseUncastablePolicy(p.Uncastable); err != nil {
			return fmt.Errorf("ai.Profile %q: %w", p.ID, err)
		}
	}
	return nil
}

// Policy returns the profile's uncastable policy, defaulting to PolicyRest.
func (p *Profile) Policy() UncastablePolicy {
	if p.Uncastable == "" {
		return PolicyRest
	}
	return UncastablePolicy(p.Uncastable)
}

// yamlProfileFile wraps the YAML top-level key.
type yamlProfileFile struct {
	Profile *Profile `yaml:"profile"`
}

// LoadProfiles reads all *.yaml files from dir and returns parsed Profiles.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns error if any file fails to parse or validate, or
// if two files declare the same profile ID.
func LoadProfiles(dir string) ([]*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ai.LoadProfiles: reading %q: %w", dir, err)
	}
	var profiles []*Profile
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai.LoadProfiles: reading %s: %w", e.Name(), err)
		}
		var f yamlProfileFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("ai.LoadProfiles: parsing %s: %w", e.Name(), err)
		}
		if f.Profile == nil {
			return nil, fmt.Errorf("ai.LoadProfiles: %s missing top-level 'profile' key", e.Name())
		}
		if err := f.Profile.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[f.Profile.ID]; dup {
			return nil, fmt.Errorf("ai.LoadProfiles: duplicate profile ID %q in %s", f.Profile.ID, e.Name())
		}
		seen[f.Profile.ID] = struct{}{}
		profiles = append(profiles, f.Profile)
	}
	return profiles, nil
}

// FindProfile returns the profile with id, or false.
func FindProfile(profiles []*Profile, id string) (*Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// BuildKernel resolves p against reg and returns a ready Kernel.
//
// Precondition: p must have passed Validate.
func BuildKernel(reg *Registry, p *Profile, caller ScriptCaller, logger *zap.Logger) (*Kernel, error) {
	scorer, err := reg.Build(p.Scorer, ScorerOptions{SurplusWeight: p.SurplusWeight, Caller: caller})
	if err != nil {
		return nil, fmt.Errorf("ai.BuildKernel: profile %q: %w", p.ID, err)
	}
	return NewKernel(scorer, p.Policy(), logger), nil
}
