package gamedata

import (
	"errors"
	"fmt"
	"strings"
)

// ProfileRegistry holds loaded strategy profiles and provides lookup utilities.
type ProfileRegistry struct {
	profiles map[string]*ProfileDef
	all      []ProfileDef
}

// NewProfileRegistry creates a registry from loaded profile definitions.
// Profiles with invalid weights or duplicate IDs are rejected.
func NewProfileRegistry(profiles []ProfileDef) (*ProfileRegistry, error) {
	registry := &ProfileRegistry{
		profiles: make(map[string]*ProfileDef),
		all:      profiles,
	}
	var errs []string
	for i := range profiles {
		errs = append(errs, profiles[i].validate()...)
		if _, dup := registry.profiles[profiles[i].ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate profile id %s", profiles[i].ID))
		}
		registry.profiles[profiles[i].ID] = &profiles[i]
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("profile validation failed: %s", strings.Join(errs, "; "))
	}
	return registry, nil
}

// LoadProfileRegistry loads and creates a registry from the embedded profiles.yaml.
func LoadProfileRegistry() (*ProfileRegistry, error) {
	profiles, err := LoadProfiles()
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, errors.New("no profiles loaded from profiles.yaml")
	}
	return NewProfileRegistry(profiles)
}

// MustLoadProfileRegistry loads a registry, panicking on error.
func MustLoadProfileRegistry() *ProfileRegistry {
	registry, err := LoadProfileRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the profile with the given ID, or nil if not found.
func (r *ProfileRegistry) GetByID(id string) *ProfileDef {
	return r.profiles[id]
}

// All returns all profile definitions.
func (r *ProfileRegistry) All() []ProfileDef {
	return r.all
}

// Count returns the number of profiles in the registry.
func (r *ProfileRegistry) Count() int {
	return len(r.all)
}
