package duel

import "fmt"

// EndCause is why a game ended.
type EndCause int

const (
	// P1Victory: player 1's lunge reached player 2.
	P1Victory EndCause = iota
	// P2Victory: player 2's lunge reached player 1.
	P2Victory
	// P1Pin: player 1 drove player 2 into the far wall.
	P1Pin
	// P2Pin: player 2 drove player 1 into the near wall.
	P2Pin
	// P1Survive: player 2 ran out of energy first.
	P1Survive
	// P2Survive: player 1 ran out of energy first.
	P2Survive
	// P1Energy: both ran out, player 1 with more left.
	P1Energy
	// P2Energy: both ran out, player 2 with more left.
	P2Energy
	// EnergyTie: both ran out with equal energy.
	EnergyTie
	// P1Turns: turn limit reached, player 1 with more energy.
	P1Turns
	// P2Turns: turn limit reached, player 2 with more energy.
	P2Turns
	// TurnTie: turn limit reached with equal energy.
	TurnTie
)

type causeInfo struct {
	name    string
	victor  Player
	decided bool
	explain string
	swapped EndCause
}

var causes = [...]causeInfo{
	P1Victory: {"p1_victory", P1, true, "victory", P2Victory},
	P2Victory: {"p2_victory", P2, true, "victory", P1Victory},
	P1Pin:     {"p1_pin", P1, true, "opponent-pinned", P2Pin},
	P2Pin:     {"p2_pin", P2, true, "opponent-pinned", P1Pin},
	P1Survive: {"p1_survive", P1, true, "opponent-out-of-energy", P2Survive},
	P2Survive: {"p2_survive", P2, true, "opponent-out-of-energy", P1Survive},
	P1Energy:  {"p1_energy", P1, true, "more-energy", P2Energy},
	P2Energy:  {"p2_energy", P2, true, "more-energy", P1Energy},
	EnergyTie: {"energy_tie", 0, false, "out-of-energy", EnergyTie},
	P1Turns:   {"p1_turns", P1, true, "more-energy(out-of-turns)", P2Turns},
	P2Turns:   {"p2_turns", P2, true, "more-energy(out-of-turns)", P1Turns},
	TurnTie:   {"turn_tie", 0, false, "out-of-turns", TurnTie},
}

// EndCauses returns every end cause in declaration order.
func EndCauses() []EndCause {
	all := make([]EndCause, len(causes))
	for i := range causes {
		all[i] = EndCause(i)
	}
	return all
}

func (c EndCause) info() (causeInfo, bool) {
	if c < 0 || int(c) >= len(causes) {
		return causeInfo{}, false
	}
	return causes[c], true
}

// String returns the snake-case cause name.
func (c EndCause) String() string {
	if info, ok := c.info(); ok {
		return info.name
	}
	return "unknown"
}

// Swap returns the same cause with the players' roles exchanged.
func (c EndCause) Swap() EndCause {
	if info, ok := c.info(); ok {
		return info.swapped
	}
	return c
}

// EndState is a terminal outcome together with the final positions and energies.
// Terminal states may leave both players on one cell.
type EndState struct {
	Cause EndCause
	State ActiveState
}

// Inner returns the final state wrapped by the outcome.
func (e EndState) Inner() ActiveState {
	return e.State
}

// Winner returns "player-1", "player-2" or "tie".
func (e EndState) Winner() string {
	if p, ok := e.Victor(); ok {
		return p.String()
	}
	return "tie"
}

// Victor returns the winning side; ok is false for ties.
func (e EndState) Victor() (p Player, ok bool) {
	info, known := e.Cause.info()
	if !known || !info.decided {
		return 0, false
	}
	return info.victor, true
}

// Explain returns a short category for why the game ended.
func (e EndState) Explain() string {
	if info, ok := e.Cause.info(); ok {
		return info.explain
	}
	return "unknown"
}

// Mirror reflects the outcome onto the swapped, mirrored field.
func (e EndState) Mirror(cfg Config) EndState {
	return EndState{Cause: e.Cause.Swap(), State: e.State.Mirror(cfg)}
}

// String renders the outcome for logs.
func (e EndState) String() string {
	return fmt.Sprintf("%s(%s)", e.Cause, e.State)
}

// Validate checks the terminal invariants: both cells on the field and neither
// energy above the starting budget. Ordering is not enforced.
func (e EndState) Validate(cfg Config) error {
	if _, ok := e.Cause.info(); !ok {
		return violation(InvariantUnknownResult, "end cause %d is not declared", int(e.Cause))
	}
	return e.State.checkBounds(cfg)
}
