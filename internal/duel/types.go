// Package duel resolves turns of a one-dimensional fencing duel.
//
// Two players stand on a line of cells, each facing the other with their own wall at
// their back. Every turn both players commit a move at the same time and pay energy
// for it. The Resolver judges the pair of moves against the rule Table and produces
// either the next live state or a terminal EndState.
package duel

import (
	"fmt"
	"strings"
)

// MoveKind is what a player does with their turn.
type MoveKind int

const (
	// Back steps one cell toward the player's own wall.
	Back MoveKind = iota
	// Stand holds position.
	Stand
	// Forward steps one cell toward the opponent.
	Forward
	// Lunge covers two cells toward the opponent.
	Lunge
	// NoEnergy is declared when a player cannot afford any other move. It spends nothing.
	NoEnergy
)

const numMoveKinds = 5

// String returns the move name used in rule books and logs.
func (k MoveKind) String() string {
	switch k {
	case Back:
		return "back"
	case Stand:
		return "stand"
	case Forward:
		return "forward"
	case Lunge:
		return "lunge"
	case NoEnergy:
		return "empty"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the declared move kinds.
func (k MoveKind) Valid() bool {
	return k >= Back && k <= NoEnergy
}

// advance is the number of cells the move carries its player toward the opponent.
func (k MoveKind) advance() int {
	switch k {
	case Back:
		return -1
	case Forward:
		return 1
	case Lunge:
		return 2
	default:
		return 0
	}
}

// MoveKinds returns every move kind in declaration order.
func MoveKinds() []MoveKind {
	return []MoveKind{Back, Stand, Forward, Lunge, NoEnergy}
}

// ParseMoveKind converts a move name back into a MoveKind.
// "no_energy" is accepted as an alias for "empty".
func ParseMoveKind(s string) (MoveKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "no_energy" {
		return NoEnergy, nil
	}
	for _, k := range MoveKinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown move kind %q", s)
}

// Player identifies one side of the duel.
type Player int

const (
	// P1 starts on the left and defends cell 0.
	P1 Player = iota
	// P2 starts on the right and defends the last cell.
	P2
)

// String returns the player label used in results.
func (p Player) String() string {
	switch p {
	case P1:
		return "player-1"
	case P2:
		return "player-2"
	default:
		return "unknown"
	}
}

// Other returns the opposing side.
func (p Player) Other() Player {
	if p == P1 {
		return P2
	}
	return P1
}

// PlayerState is one player's cell and remaining energy.
type PlayerState struct {
	Pos    int
	Energy int
}

// ActiveState is a live snapshot of both players. It is a value and is replaced
// wholesale on every resolved turn.
type ActiveState struct {
	P1 PlayerState
	P2 PlayerState
}

// Player returns the state of the given side.
func (s ActiveState) Player(p Player) PlayerState {
	if p == P1 {
		return s.P1
	}
	return s.P2
}

// String renders the state compactly for logs and errors.
func (s ActiveState) String() string {
	return fmt.Sprintf("p1{pos=%d energy=%d} p2{pos=%d energy=%d}",
		s.P1.Pos, s.P1.Energy, s.P2.Pos, s.P2.Energy)
}

// Mirror swaps the players and reflects their cells across the field, so the
// left player becomes the right one and vice versa.
func (s ActiveState) Mirror(cfg Config) ActiveState {
	last := cfg.FieldSize - 1
	return ActiveState{
		P1: PlayerState{Pos: last - s.P2.Pos, Energy: s.P2.Energy},
		P2: PlayerState{Pos: last - s.P1.Pos, Energy: s.P1.Energy},
	}
}

// Move is a committed choice for one turn.
type Move struct {
	Kind        MoveKind
	EnergySpent int
}

// String renders the move as "kind/spent".
func (m Move) String() string {
	return fmt.Sprintf("%s/%d", m.Kind, m.EnergySpent)
}

// Check verifies the move can be paid for out of energy. A NoEnergy declaration
// must spend nothing; any other move must leave at least one point of energy.
func (m Move) Check(energy int) error {
	if !m.Kind.Valid() {
		return violation(InvariantMoveKind, "move kind %d is not declared", int(m.Kind))
	}
	if m.EnergySpent < 0 {
		return violation(InvariantEnergySpend, "%s spends negative energy", m)
	}
	if m.Kind == NoEnergy {
		if m.EnergySpent != 0 {
			return violation(InvariantEnergySpend, "%s must spend nothing", m)
		}
		return nil
	}
	if m.EnergySpent >= energy {
		return violation(InvariantEnergySpend, "%s needs more than the %d energy available", m, energy)
	}
	return nil
}

// MovePair holds both players' simultaneous choices for one turn.
type MovePair struct {
	P1 Move
	P2 Move
}

// Move returns the given side's move.
func (m MovePair) Move(p Player) Move {
	if p == P1 {
		return m.P1
	}
	return m.P2
}

// Swap exchanges the two sides' moves.
func (m MovePair) Swap() MovePair {
	return MovePair{P1: m.P2, P2: m.P1}
}

// Turn is the immutable record of one resolved turn: the state before the moves
// and the moves themselves.
type Turn struct {
	State ActiveState
	Moves MovePair
}
