package gamedata

import (
	"fmt"
	"math/rand"
	"sort"
)

// ProfileDef defines a computer strategy loaded from YAML.
type ProfileDef struct {
	ID      string         `yaml:"id"`      // Unique identifier (e.g., "random")
	Name    string         `yaml:"name"`    // Display name
	Weights map[string]int `yaml:"weights"` // Relative pick frequency per move name
	Costs   map[string]int `yaml:"costs"`   // Energy spent per move name
}

// Moves returns the profile's move names in a stable order.
func (p *ProfileDef) Moves() []string {
	names := make([]string, 0, len(p.Weights))
	for name := range p.Weights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cost returns the energy a move spends; unlisted moves are free.
func (p *ProfileDef) Cost(move string) int {
	return p.Costs[move]
}

// Pick selects a move name using weighted probability among the moves for which
// allowed returns true. It returns false when no allowed move has weight.
func (p *ProfileDef) Pick(rng *rand.Rand, allowed func(move string) bool) (string, bool) {
	moves := p.Moves()
	total := 0
	for _, m := range moves {
		if allowed(m) {
			total += p.Weights[m]
		}
	}
	if total <= 0 {
		return "", false
	}

	roll := rng.Intn(total)

	cumulative := 0
	for _, m := range moves {
		if !allowed(m) {
			continue
		}
		cumulative += p.Weights[m]
		if roll < cumulative {
			return m, true
		}
	}
	return "", false
}

func (p *ProfileDef) validate() []string {
	var errs []string
	if p.ID == "" {
		errs = append(errs, "profile id is required")
	}
	total := 0
	for name, w := range p.Weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s: weight of %s must be >= 0", p.ID, name))
		}
		total += w
	}
	if total <= 0 {
		errs = append(errs, fmt.Sprintf("%s: weights must sum to > 0", p.ID))
	}
	for name, c := range p.Costs {
		if c < 0 {
			errs = append(errs, fmt.Sprintf("%s: cost of %s must be >= 0", p.ID, name))
		}
	}
	return errs
}

// ProfilesFile represents the structure of profiles.yaml.
type ProfilesFile struct {
	Profiles []ProfileDef `yaml:"profiles"`
}

// LoadProfiles loads strategy profiles from the embedded profiles.yaml file.
func LoadProfiles() ([]ProfileDef, error) {
	file, err := Load[ProfilesFile]("profiles.yaml")
	if err != nil {
		return nil, err
	}
	return file.Profiles, nil
}
