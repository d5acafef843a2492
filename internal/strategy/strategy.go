// Package strategy provides move selection for computer-controlled duellists.
package strategy

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/samdwyer/lunge/internal/duel"
	"github.com/samdwyer/lunge/internal/gamedata"
)

// View is what a strategy sees when choosing a move.
type View struct {
	Side      duel.Player
	State     duel.ActiveState
	Decision  duel.DecisionState
	TurnsLeft int
}

// NewView builds the view of state for one side on the given turn.
func NewView(side duel.Player, state duel.ActiveState, cfg duel.Config, turn int) View {
	return View{
		Side:      side,
		State:     state,
		Decision:  state.Decision(cfg),
		TurnsLeft: cfg.MaxTurns - turn,
	}
}

// Self returns the choosing player's state.
func (v View) Self() duel.PlayerState {
	return v.State.Player(v.Side)
}

// Opponent returns the other player's state.
func (v View) Opponent() duel.PlayerState {
	return v.State.Player(v.Side.Other())
}

// Gap returns the number of open cells between the players.
func (v View) Gap() int {
	return v.Decision.SeparationDist
}

// WallDist returns the open cells behind the choosing player.
func (v View) WallDist() int {
	return v.Decision.DistFromWall(v.Side)
}

// Strategy chooses a move each turn.
type Strategy interface {
	Name() string
	Choose(v View) duel.Move
}

// Factory creates a fresh strategy for one game. Strategies may hold state, so
// every game gets its own.
type Factory func(seed int64) Strategy

// Costs is the energy each move kind spends.
type Costs map[duel.MoveKind]int

// CostsFromProfile converts a profile's named costs into Costs.
func CostsFromProfile(p *gamedata.ProfileDef) (Costs, error) {
	costs := make(Costs, len(p.Costs))
	for name, c := range p.Costs {
		kind, err := duel.ParseMoveKind(name)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.ID, err)
		}
		costs[kind] = c
	}
	return costs, nil
}

// first returns the first kind in prefs that can be paid for out of energy, or
// NoEnergy when none can.
func (c Costs) first(energy int, prefs ...duel.MoveKind) duel.Move {
	for _, kind := range prefs {
		if cost := c[kind]; cost < energy {
			return duel.Move{Kind: kind, EnergySpent: cost}
		}
	}
	return duel.Move{Kind: duel.NoEnergy}
}

// Stand holds ground every turn for free.
type Stand struct{}

func (Stand) Name() string { return "stand" }

func (Stand) Choose(View) duel.Move {
	return duel.Move{Kind: duel.Stand}
}

// Random picks moves by a profile's weights among those it can afford.
type Random struct {
	profile *gamedata.ProfileDef
	costs   Costs
	rng     *rand.Rand
}

// NewRandom creates a seeded weighted-random strategy.
func NewRandom(profile *gamedata.ProfileDef, seed int64) (*Random, error) {
	costs, err := CostsFromProfile(profile)
	if err != nil {
		return nil, err
	}
	return &Random{
		profile: profile,
		costs:   costs,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

func (r *Random) Name() string { return r.profile.ID }

func (r *Random) Choose(v View) duel.Move {
	energy := v.Self().Energy
	name, ok := r.profile.Pick(r.rng, func(move string) bool {
		kind, err := duel.ParseMoveKind(move)
		return err == nil && kind != duel.NoEnergy && r.costs[kind] < energy
	})
	if !ok {
		return duel.Move{Kind: duel.NoEnergy}
	}
	kind, _ := duel.ParseMoveKind(name)
	return duel.Move{Kind: kind, EnergySpent: r.costs[kind]}
}

// Aggressor closes the distance and lunges as soon as a lunge can land.
type Aggressor struct {
	Costs Costs
}

func (a Aggressor) Name() string { return "aggressor" }

func (a Aggressor) Choose(v View) duel.Move {
	energy := v.Self().Energy
	if v.Gap() <= 2 {
		return a.Costs.first(energy, duel.Lunge, duel.Forward, duel.Stand)
	}
	return a.Costs.first(energy, duel.Forward, duel.Stand)
}

// Coward retreats to its wall and waits there, hoping to outlast the clock.
type Coward struct {
	Costs Costs
}

func (c Coward) Name() string { return "coward" }

func (c Coward) Choose(v View) duel.Move {
	energy := v.Self().Energy
	if v.WallDist() > 0 {
		return c.Costs.first(energy, duel.Back, duel.Stand)
	}
	// Cornered with the opponent adjacent: strike first.
	if v.Gap() == 0 {
		return c.Costs.first(energy, duel.Lunge, duel.Stand)
	}
	return c.Costs.first(energy, duel.Stand)
}

// Scripted plays a fixed list of moves, then stands.
type Scripted struct {
	Moves []duel.Move
	next  int
}

func (s *Scripted) Name() string { return "scripted" }

func (s *Scripted) Choose(View) duel.Move {
	if s.next >= len(s.Moves) {
		return duel.Move{Kind: duel.Stand}
	}
	m := s.Moves[s.next]
	s.next++
	return m
}

// Registry maps strategy names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds the registry: the fixed strategies plus one weighted-random
// strategy per profile. Aggressor and Coward pay the costs of baseProfile.
func NewRegistry(profiles *gamedata.ProfileRegistry, baseProfile string) (*Registry, error) {
	base := profiles.GetByID(baseProfile)
	if base == nil {
		return nil, fmt.Errorf("strategy: unknown base profile %q", baseProfile)
	}
	baseCosts, err := CostsFromProfile(base)
	if err != nil {
		return nil, err
	}

	r := &Registry{factories: map[string]Factory{
		"stand":     func(int64) Strategy { return Stand{} },
		"aggressor": func(int64) Strategy { return Aggressor{Costs: baseCosts} },
		"coward":    func(int64) Strategy { return Coward{Costs: baseCosts} },
	}}

	all := profiles.All()
	for i := range all {
		profile := &all[i]
		if _, taken := r.factories[profile.ID]; taken {
			return nil, fmt.Errorf("strategy: profile %q shadows a built-in strategy", profile.ID)
		}
		if _, err := CostsFromProfile(profile); err != nil {
			return nil, err
		}
		r.factories[profile.ID] = func(seed int64) Strategy {
			s, _ := NewRandom(profile, seed)
			return s
		}
	}
	return r, nil
}

// DefaultRegistry builds the registry from the embedded profiles.
func DefaultRegistry() (*Registry, error) {
	profiles, err := gamedata.LoadProfileRegistry()
	if err != nil {
		return nil, err
	}
	return NewRegistry(profiles, "random")
}

// ByName returns the factory for a strategy name.
func (r *Registry) ByName(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q (have %v)", name, r.Names())
	}
	return f, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
