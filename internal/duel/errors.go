package duel

import "fmt"

// Invariant names reported by InvariantError.
const (
	InvariantConfig        = "config"
	InvariantPosition      = "position-bounds"
	InvariantOrder         = "player-order"
	InvariantEnergy        = "energy-bounds"
	InvariantDistanceSum   = "distance-sum"
	InvariantMoveKind      = "move-kind"
	InvariantEnergySpend   = "energy-spend"
	InvariantOverflow      = "arithmetic-overflow"
	InvariantTurnNumber    = "turn-number"
	InvariantTableTotal    = "table-total"
	InvariantUnknownResult = "transition"
)

// InvariantError reports a broken contract: a malformed state or move handed to the
// resolver, or a defect in the rule table. It is never a game outcome, and callers
// are expected to abort the game when they see one.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return "duel: " + e.Invariant + " invariant violated: " + e.Detail
}

func violation(invariant, format string, args ...any) error {
	return &InvariantError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

// checkedAdd returns a+b, or an overflow violation naming what was being computed.
func checkedAdd(a, b int, what string) (int, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, violation(InvariantOverflow, "%s: %d + %d", what, a, b)
	}
	return sum, nil
}

// checkedSub returns a-b, or an overflow violation naming what was being computed.
func checkedSub(a, b int, what string) (int, error) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, violation(InvariantOverflow, "%s: %d - %d", what, a, b)
	}
	return diff, nil
}
