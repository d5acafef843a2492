package ui

import (
	"strings"
	"testing"

	"github.com/samdwyer/lunge/internal/duel"
)

func TestFieldLine(t *testing.T) {
	tests := []struct {
		name  string
		state duel.ActiveState
		want  string
	}{
		{"start", duel.ActiveState{P1: duel.PlayerState{Pos: 1}, P2: duel.PlayerState{Pos: 8}}, "|.1......2.|"},
		{"adjacent", duel.ActiveState{P1: duel.PlayerState{Pos: 4}, P2: duel.PlayerState{Pos: 5}}, "|....12....|"},
		{"shared cell", duel.ActiveState{P1: duel.PlayerState{Pos: 9}, P2: duel.PlayerState{Pos: 9}}, "|.........*|"},
	}

	for _, tt := range tests {
		if got := FieldLine(10, tt.state, '1', '2'); got != tt.want {
			t.Errorf("%s: FieldLine() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFrameStatus(t *testing.T) {
	s := duel.DefaultConfig().StartState()
	moves := duel.MovePair{P1: duel.Move{Kind: duel.Lunge, EnergySpent: 5}, P2: duel.Move{Kind: duel.Stand}}

	f := Frame{Turn: 3, Turns: 20, State: s, Moves: &moves}
	if got, want := f.Status(), "turn 3/20: p1 lunge/5, p2 stand/0"; got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}

	end := duel.EndState{Cause: duel.P2Pin, State: s}
	f = Frame{State: s, End: &end}
	if got := f.Status(); !strings.HasPrefix(got, "p2_pin: player-2") {
		t.Errorf("Status() = %q, want p2_pin by player-2", got)
	}
}
