package duel

// Validate checks the live-state invariants: both players on the field, player 1
// strictly left of player 2, and energies in (0, StartEnergy].
func (s ActiveState) Validate(cfg Config) error {
	if err := s.checkBounds(cfg); err != nil {
		return err
	}
	if s.P1.Pos >= s.P2.Pos {
		return violation(InvariantOrder, "p1 must stand left of p2: %s", s)
	}
	if s.P1.Energy <= 0 || s.P2.Energy <= 0 {
		return violation(InvariantEnergy, "live energy must be positive: %s", s)
	}
	return nil
}

// checkBounds holds the invariants shared by live and terminal states.
func (s ActiveState) checkBounds(cfg Config) error {
	for _, p := range []PlayerState{s.P1, s.P2} {
		if p.Pos < 0 || p.Pos >= cfg.FieldSize {
			return violation(InvariantPosition, "position %d off a field of %d: %s", p.Pos, cfg.FieldSize, s)
		}
		if p.Energy > cfg.StartEnergy {
			return violation(InvariantEnergy, "energy %d above start energy %d: %s", p.Energy, cfg.StartEnergy, s)
		}
	}
	return nil
}

// DecisionState is the view of an ActiveState the rule table is indexed by.
// It is derived every turn and never stored.
type DecisionState struct {
	P1DistFromWall int
	P2DistFromWall int
	SeparationDist int
	P1Energy       int
	P2Energy       int
}

// Decision derives the distances of each player from their own wall and the open
// gap between them.
func (s ActiveState) Decision(cfg Config) DecisionState {
	return DecisionState{
		P1DistFromWall: s.P1.Pos,
		P2DistFromWall: (cfg.FieldSize - 1) - s.P2.Pos,
		SeparationDist: s.P2.Pos - s.P1.Pos - 1,
		P1Energy:       s.P1.Energy,
		P2Energy:       s.P2.Energy,
	}
}

// DistFromWall returns how many open cells lie between a player and their wall.
func (d DecisionState) DistFromWall(p Player) int {
	if p == P1 {
		return d.P1DistFromWall
	}
	return d.P2DistFromWall
}

// Check verifies the distances partition the field: the open cells behind each
// player, the gap between them and the two occupied cells add up to the field size.
func (d DecisionState) Check(cfg Config) error {
	sum, err := checkedAdd(d.P1DistFromWall, d.P2DistFromWall, "distance sum")
	if err != nil {
		return err
	}
	if sum, err = checkedAdd(sum, d.SeparationDist, "distance sum"); err != nil {
		return err
	}
	if sum+2 != cfg.FieldSize {
		return violation(InvariantDistanceSum, "%d open cells + 2 players on a field of %d", sum, cfg.FieldSize)
	}
	if d.P1Energy <= 0 || d.P2Energy <= 0 {
		return violation(InvariantEnergy, "decision energies %d and %d must be positive", d.P1Energy, d.P2Energy)
	}
	return nil
}
