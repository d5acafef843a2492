package duel

import (
	"errors"
	"testing"
)

// allStates enumerates every live arrangement of the field with the given energies.
func allStates(cfg Config, e1, e2 int) []ActiveState {
	var states []ActiveState
	for a := 0; a < cfg.FieldSize; a++ {
		for b := a + 1; b < cfg.FieldSize; b++ {
			states = append(states, ActiveState{
				P1: PlayerState{Pos: a, Energy: e1},
				P2: PlayerState{Pos: b, Energy: e2},
			})
		}
	}
	return states
}

func wantInvariant(t *testing.T, err error, invariant string) {
	t.Helper()
	var inv *InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("error = %v, want InvariantError(%s)", err, invariant)
	}
	if inv.Invariant != invariant {
		t.Errorf("invariant = %q, want %q (%v)", inv.Invariant, invariant, err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny field", func(c *Config) { c.FieldSize = 4 }},
		{"p1 off field", func(c *Config) { c.P1StartPos = -1 }},
		{"p2 off field", func(c *Config) { c.P2StartPos = 10 }},
		{"starts crossed", func(c *Config) { c.P1StartPos, c.P2StartPos = 5, 3 }},
		{"no energy", func(c *Config) { c.StartEnergy = 0 }},
		{"no turns", func(c *Config) { c.MaxTurns = 0 }},
		{"no games", func(c *Config) { c.GamesPerMatch = 0 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() should fail", tt.name)
		}
	}
}

func TestStartState(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.StartState()
	want := ActiveState{P1: PlayerState{1, 30000}, P2: PlayerState{8, 30000}}
	if s != want {
		t.Errorf("StartState() = %s, want %s", s, want)
	}
	if err := s.Validate(cfg); err != nil {
		t.Errorf("StartState().Validate() error: %v", err)
	}
}

func TestActiveStateValidate(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name      string
		state     ActiveState
		invariant string
	}{
		{"p1 below field", ActiveState{PlayerState{-1, 10}, PlayerState{5, 10}}, InvariantPosition},
		{"p2 past field", ActiveState{PlayerState{1, 10}, PlayerState{10, 10}}, InvariantPosition},
		{"same cell", ActiveState{PlayerState{4, 10}, PlayerState{4, 10}}, InvariantOrder},
		{"crossed", ActiveState{PlayerState{6, 10}, PlayerState{4, 10}}, InvariantOrder},
		{"zero energy", ActiveState{PlayerState{1, 0}, PlayerState{8, 10}}, InvariantEnergy},
		{"energy above start", ActiveState{PlayerState{1, 10}, PlayerState{8, 30001}}, InvariantEnergy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantInvariant(t, tt.state.Validate(cfg), tt.invariant)
		})
	}
}

func TestDecisionDistanceSum(t *testing.T) {
	cfg := DefaultConfig()
	for _, s := range allStates(cfg, 7, 30000) {
		d := s.Decision(cfg)
		if err := d.Check(cfg); err != nil {
			t.Errorf("Decision(%s).Check() error: %v", s, err)
		}
		if got := d.P1DistFromWall + d.P2DistFromWall + d.SeparationDist + 2; got != cfg.FieldSize {
			t.Errorf("Decision(%s) distances + players = %d, want %d", s, got, cfg.FieldSize)
		}
	}
}

func TestDecisionValues(t *testing.T) {
	cfg := DefaultConfig()
	d := cfg.StartState().Decision(cfg)
	want := DecisionState{P1DistFromWall: 1, P2DistFromWall: 1, SeparationDist: 6, P1Energy: 30000, P2Energy: 30000}
	if d != want {
		t.Errorf("Decision() = %+v, want %+v", d, want)
	}
	if d.DistFromWall(P1) != 1 || d.DistFromWall(P2) != 1 {
		t.Error("DistFromWall() should read each side's distance")
	}
}

func TestDecisionCheckRejectsCorruption(t *testing.T) {
	cfg := DefaultConfig()
	d := DecisionState{P1DistFromWall: 1, P2DistFromWall: 1, SeparationDist: 5, P1Energy: 1, P2Energy: 1}
	wantInvariant(t, d.Check(cfg), InvariantDistanceSum)

	d = DecisionState{P1DistFromWall: 1, P2DistFromWall: 1, SeparationDist: 6, P1Energy: 0, P2Energy: 1}
	wantInvariant(t, d.Check(cfg), InvariantEnergy)
}

func TestMirrorIsInvolution(t *testing.T) {
	cfg := DefaultConfig()
	for _, s := range allStates(cfg, 3, 9) {
		m := s.Mirror(cfg)
		if err := m.Validate(cfg); err != nil {
			t.Errorf("Mirror(%s) invalid: %v", s, err)
		}
		if back := m.Mirror(cfg); back != s {
			t.Errorf("Mirror(Mirror(%s)) = %s", s, back)
		}
	}
}
