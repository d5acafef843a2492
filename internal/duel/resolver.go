package duel

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Resolver judges one turn at a time against a compiled rule table.
// It holds no game state and is safe to share between concurrent games.
type Resolver struct {
	cfg    Config
	table  *Table
	logger zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug traces of every resolution.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver for the given field and rule table.
func NewResolver(cfg Config, table *Table, opts ...Option) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, errors.New("duel: nil rule table")
	}
	r := &Resolver{
		cfg:    cfg,
		table:  table,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the field parameters the resolver judges by.
func (r *Resolver) Config() Config {
	return r.cfg
}

// MakeMove resolves one turn. It returns the Turn record (the pre-move state and
// the moves) and either the next live state or the terminal outcome.
//
// A returned error is always an *InvariantError: the state, the moves or the turn
// number broke the resolver's contract, or the table selected an outcome that is
// not a valid state. Game endings are reported through NextGameState, never as
// errors.
func (r *Resolver) MakeMove(current ActiveState, moves MovePair, turnNumber int) (Turn, NextGameState, error) {
	if err := current.Validate(r.cfg); err != nil {
		return Turn{}, NextGameState{}, err
	}
	ds := current.Decision(r.cfg)
	if err := ds.Check(r.cfg); err != nil {
		return Turn{}, NextGameState{}, err
	}
	if err := moves.P1.Check(ds.P1Energy); err != nil {
		return Turn{}, NextGameState{}, fmt.Errorf("player-1 move: %w", err)
	}
	if err := moves.P2.Check(ds.P2Energy); err != nil {
		return Turn{}, NextGameState{}, fmt.Errorf("player-2 move: %w", err)
	}
	if turnNumber < 1 || turnNumber > r.cfg.MaxTurns {
		return Turn{}, NextGameState{}, violation(InvariantTurnNumber, "turn %d outside 1..%d", turnNumber, r.cfg.MaxTurns)
	}

	turn := Turn{State: current, Moves: moves}
	key := Key{
		Sep:    SeparationOf(ds.SeparationDist),
		P1:     moves.P1.Kind,
		P2:     moves.P2.Kind,
		P1Wall: WallOf(ds.P1DistFromWall),
		P2Wall: WallOf(ds.P2DistFromWall),
	}

	log := r.logger.With().Int("turn", turnNumber).Logger()
	log.Debug().
		Stringer("state", current).
		Int("p1_wall_dist", ds.P1DistFromWall).
		Int("p2_wall_dist", ds.P2DistFromWall).
		Int("separation", ds.SeparationDist).
		Stringer("key", key).
		Msg("resolving turn")

	if turnNumber == r.cfg.MaxTurns {
		next := Ended(turnLimitCause(current), current)
		log.Debug().Stringer("next", next).Msg("turn limit reached")
		return turn, next, nil
	}

	naive, err := naiveMoves(current, moves)
	if err != nil {
		return Turn{}, NextGameState{}, err
	}
	c, err := buildCandidates(current, naive, r.cfg)
	if err != nil {
		return Turn{}, NextGameState{}, err
	}

	tr, err := r.table.Lookup(key)
	if err != nil {
		return Turn{}, NextGameState{}, err
	}
	next, err := c.pick(tr)
	if err != nil {
		return Turn{}, NextGameState{}, err
	}
	if err := next.Validate(r.cfg); err != nil {
		return Turn{}, NextGameState{}, fmt.Errorf("turn %d, %s selected %s: %w", turnNumber, key, tr, err)
	}

	log.Debug().Stringer("transition", tr).Stringer("next", next).Msg("turn resolved")
	return turn, next, nil
}

// turnLimitCause compares the energies held when the last turn begins.
func turnLimitCause(s ActiveState) EndCause {
	switch {
	case s.P1.Energy > s.P2.Energy:
		return P1Turns
	case s.P1.Energy < s.P2.Energy:
		return P2Turns
	default:
		return TurnTie
	}
}

// naiveMoves applies each move's delta and cost with no regard for collisions or
// walls. The result is a candidate only and may lie off the field.
func naiveMoves(s ActiveState, moves MovePair) (ActiveState, error) {
	var (
		next ActiveState
		err  error
	)
	// Player 1 advances rightward, player 2 leftward.
	if next.P1.Pos, err = checkedAdd(s.P1.Pos, moves.P1.Kind.advance(), "p1 naive position"); err != nil {
		return ActiveState{}, err
	}
	if next.P2.Pos, err = checkedSub(s.P2.Pos, moves.P2.Kind.advance(), "p2 naive position"); err != nil {
		return ActiveState{}, err
	}
	if next.P1.Energy, err = spend(s.P1.Energy, moves.P1.EnergySpent, "p1"); err != nil {
		return ActiveState{}, err
	}
	if next.P2.Energy, err = spend(s.P2.Energy, moves.P2.EnergySpent, "p2"); err != nil {
		return ActiveState{}, err
	}
	return next, nil
}

func spend(energy, cost int, who string) (int, error) {
	left, err := checkedSub(energy, cost, who+" naive energy")
	if err != nil {
		return 0, err
	}
	if left < 0 {
		return 0, violation(InvariantEnergySpend, "%s spends %d of %d energy", who, cost, energy)
	}
	return left, nil
}

// candidates holds every outcome a turn could resolve to. All are built before
// the table is consulted; exactly one is returned.
type candidates struct {
	naive     NextGameState
	bounce    NextGameState
	wall      NextGameState
	p1Push    NextGameState
	p2Push    NextGameState
	p1Victory NextGameState
	p2Victory NextGameState
	p1Survive NextGameState
	p2Survive NextGameState
	p1Pin     NextGameState
	p2Pin     NextGameState
	energy    NextGameState
}

func buildCandidates(cur, naive ActiveState, cfg Config) (*candidates, error) {
	last := cfg.FieldSize - 1

	// Positions held, costs paid.
	held := ActiveState{
		P1: PlayerState{Pos: cur.P1.Pos, Energy: naive.P1.Energy},
		P2: PlayerState{Pos: cur.P2.Pos, Energy: naive.P2.Energy},
	}
	clamped := ActiveState{
		P1: PlayerState{Pos: clamp(naive.P1.Pos, 0, last), Energy: naive.P1.Energy},
		P2: PlayerState{Pos: clamp(naive.P2.Pos, 0, last), Energy: naive.P2.Energy},
	}

	behindP2, err := checkedAdd(cur.P2.Pos, 1, "p1 push")
	if err != nil {
		return nil, err
	}
	behindP1, err := checkedSub(cur.P1.Pos, 1, "p2 push")
	if err != nil {
		return nil, err
	}
	p1Push := ActiveState{
		P1: PlayerState{Pos: cur.P2.Pos, Energy: naive.P1.Energy},
		P2: PlayerState{Pos: behindP2, Energy: naive.P2.Energy},
	}
	p2Push := ActiveState{
		P1: PlayerState{Pos: behindP1, Energy: naive.P1.Energy},
		P2: PlayerState{Pos: cur.P1.Pos, Energy: naive.P2.Energy},
	}

	energyCause := EnergyTie
	switch {
	case naive.P1.Energy > naive.P2.Energy:
		energyCause = P1Energy
	case naive.P1.Energy < naive.P2.Energy:
		energyCause = P2Energy
	}

	return &candidates{
		naive:     Active(naive),
		bounce:    Active(held),
		wall:      Active(clamped),
		p1Push:    Active(p1Push),
		p2Push:    Active(p2Push),
		p1Victory: Ended(P1Victory, naive),
		p2Victory: Ended(P2Victory, naive),
		p1Survive: Ended(P1Survive, held),
		p2Survive: Ended(P2Survive, held),
		p1Pin: Ended(P1Pin, ActiveState{
			P1: PlayerState{Pos: last, Energy: naive.P1.Energy},
			P2: PlayerState{Pos: last, Energy: naive.P2.Energy},
		}),
		p2Pin: Ended(P2Pin, ActiveState{
			P1: PlayerState{Pos: 0, Energy: naive.P1.Energy},
			P2: PlayerState{Pos: 0, Energy: naive.P2.Energy},
		}),
		energy: Ended(energyCause, held),
	}, nil
}

func (c *candidates) pick(t Transition) (NextGameState, error) {
	switch t {
	case ActiveNaiveMove:
		return c.naive, nil
	case ActiveBounce:
		return c.bounce, nil
	case ActiveP1Push:
		return c.p1Push, nil
	case ActiveP2Push:
		return c.p2Push, nil
	case ActiveWall:
		return c.wall, nil
	case EndP1Victory:
		return c.p1Victory, nil
	case EndP2Victory:
		return c.p2Victory, nil
	case EndP1Pin:
		return c.p1Pin, nil
	case EndP2Pin:
		return c.p2Pin, nil
	case EndP1Survive:
		return c.p1Survive, nil
	case EndP2Survive:
		return c.p2Survive, nil
	case EndEnergy:
		return c.energy, nil
	default:
		return NextGameState{}, violation(InvariantUnknownResult, "transition %d is not declared", int(t))
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
