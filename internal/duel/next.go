package duel

// NextGameState is the result of a resolved turn: either a new live state or a
// terminal outcome, never both.
type NextGameState struct {
	active ActiveState
	end    EndState
	ended  bool
}

// Active wraps a live state.
func Active(s ActiveState) NextGameState {
	return NextGameState{active: s}
}

// Ended wraps a terminal outcome.
func Ended(cause EndCause, s ActiveState) NextGameState {
	return NextGameState{end: EndState{Cause: cause, State: s}, ended: true}
}

// IsEnd reports whether the game is over.
func (n NextGameState) IsEnd() bool {
	return n.ended
}

// ActiveState returns the live state; ok is false once the game has ended.
func (n NextGameState) ActiveState() (s ActiveState, ok bool) {
	return n.active, !n.ended
}

// EndState returns the terminal outcome; ok is false while the game is live.
func (n NextGameState) EndState() (e EndState, ok bool) {
	return n.end, n.ended
}

// Validate applies the live or terminal invariants, whichever match.
func (n NextGameState) Validate(cfg Config) error {
	if n.ended {
		return n.end.Validate(cfg)
	}
	return n.active.Validate(cfg)
}

// Mirror reflects the result onto the swapped, mirrored field.
func (n NextGameState) Mirror(cfg Config) NextGameState {
	if n.ended {
		return NextGameState{end: n.end.Mirror(cfg), ended: true}
	}
	return Active(n.active.Mirror(cfg))
}

// String renders the result for logs.
func (n NextGameState) String() string {
	if n.ended {
		return "end " + n.end.String()
	}
	return "active " + n.active.String()
}
