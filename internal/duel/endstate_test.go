package duel

import "testing"

func TestEndStateIntrospection(t *testing.T) {
	inner := ActiveState{P1: PlayerState{2, 100}, P2: PlayerState{5, 200}}

	tests := []struct {
		cause   EndCause
		name    string
		winner  string
		victor  Player
		decided bool
		explain string
	}{
		{P1Victory, "p1_victory", "player-1", P1, true, "victory"},
		{P2Victory, "p2_victory", "player-2", P2, true, "victory"},
		{P1Pin, "p1_pin", "player-1", P1, true, "opponent-pinned"},
		{P2Pin, "p2_pin", "player-2", P2, true, "opponent-pinned"},
		{P1Survive, "p1_survive", "player-1", P1, true, "opponent-out-of-energy"},
		{P2Survive, "p2_survive", "player-2", P2, true, "opponent-out-of-energy"},
		{P1Energy, "p1_energy", "player-1", P1, true, "more-energy"},
		{P2Energy, "p2_energy", "player-2", P2, true, "more-energy"},
		{EnergyTie, "energy_tie", "tie", 0, false, "out-of-energy"},
		{P1Turns, "p1_turns", "player-1", P1, true, "more-energy(out-of-turns)"},
		{P2Turns, "p2_turns", "player-2", P2, true, "more-energy(out-of-turns)"},
		{TurnTie, "turn_tie", "tie", 0, false, "out-of-turns"},
	}

	if len(tests) != len(EndCauses()) {
		t.Fatalf("table covers %d causes, EndCauses() has %d", len(tests), len(EndCauses()))
	}

	for _, tt := range tests {
		e := EndState{Cause: tt.cause, State: inner}
		if got := tt.cause.String(); got != tt.name {
			t.Errorf("%v.String() = %q, want %q", tt.cause, got, tt.name)
		}
		if got := e.Inner(); got != inner {
			t.Errorf("%v.Inner() = %s, want %s", tt.cause, got, inner)
		}
		if got := e.Winner(); got != tt.winner {
			t.Errorf("%v.Winner() = %q, want %q", tt.cause, got, tt.winner)
		}
		p, ok := e.Victor()
		if ok != tt.decided || (ok && p != tt.victor) {
			t.Errorf("%v.Victor() = %v, %v, want %v, %v", tt.cause, p, ok, tt.victor, tt.decided)
		}
		if got := e.Explain(); got != tt.explain {
			t.Errorf("%v.Explain() = %q, want %q", tt.cause, got, tt.explain)
		}
	}
}

func TestEndCausesExhaustive(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range EndCauses() {
		e := EndState{Cause: c}
		if c.String() == "unknown" || e.Explain() == "unknown" || e.Winner() == "" {
			t.Errorf("cause %d has no introspection entry", int(c))
		}
		if seen[c.String()] {
			t.Errorf("cause name %q used twice", c)
		}
		seen[c.String()] = true

		if c.Swap().Swap() != c {
			t.Errorf("%v.Swap().Swap() = %v", c, c.Swap().Swap())
		}
		if p, ok := e.Victor(); ok {
			q, ok2 := EndState{Cause: c.Swap()}.Victor()
			if !ok2 || q != p.Other() {
				t.Errorf("%v swapped to %v does not swap the victor", c, c.Swap())
			}
		}
	}

	unknown := EndState{Cause: EndCause(42)}
	if unknown.Winner() != "tie" || unknown.Explain() != "unknown" {
		t.Error("undeclared causes should report no winner")
	}
	if err := unknown.Validate(DefaultConfig()); err == nil {
		t.Error("undeclared cause should fail Validate()")
	}
}

func TestEndStateValidate(t *testing.T) {
	cfg := DefaultConfig()

	pinned := EndState{Cause: P1Pin, State: ActiveState{PlayerState{9, 10}, PlayerState{9, 10}}}
	if err := pinned.Validate(cfg); err != nil {
		t.Errorf("shared boundary cell should be a valid terminal state: %v", err)
	}

	crossed := EndState{Cause: P1Victory, State: ActiveState{PlayerState{6, 1}, PlayerState{5, 0}}}
	if err := crossed.Validate(cfg); err != nil {
		t.Errorf("crossed players should be a valid terminal state: %v", err)
	}

	off := EndState{Cause: P1Victory, State: ActiveState{PlayerState{10, 1}, PlayerState{5, 1}}}
	wantInvariant(t, off.Validate(cfg), InvariantPosition)

	rich := EndState{Cause: TurnTie, State: ActiveState{PlayerState{1, 30001}, PlayerState{5, 1}}}
	wantInvariant(t, rich.Validate(cfg), InvariantEnergy)
}

func TestNextGameState(t *testing.T) {
	s := DefaultConfig().StartState()

	live := Active(s)
	if live.IsEnd() {
		t.Error("Active() should not be an end")
	}
	if got, ok := live.ActiveState(); !ok || got != s {
		t.Errorf("ActiveState() = %s, %v", got, ok)
	}
	if _, ok := live.EndState(); ok {
		t.Error("EndState() of a live result should not be ok")
	}

	over := Ended(TurnTie, s)
	if !over.IsEnd() {
		t.Error("Ended() should be an end")
	}
	if e, ok := over.EndState(); !ok || e.Cause != TurnTie || e.State != s {
		t.Errorf("EndState() = %s, %v", e, ok)
	}
	if _, ok := over.ActiveState(); ok {
		t.Error("ActiveState() of an ended result should not be ok")
	}
}
