package duel

import (
	"fmt"
	"strings"

	"github.com/samdwyer/lunge/internal/gamedata"
)

// MinFieldSize keeps the two walls out of lunge reach of each other, so a player
// touching their wall never has the opponent touching theirs within collision range.
const MinFieldSize = 6

// Config holds the fixed parameters of a duel.
type Config struct {
	FieldSize     int
	P1StartPos    int
	P2StartPos    int
	StartEnergy   int
	MaxTurns      int
	GamesPerMatch int
}

// DefaultConfig returns the standard duel: ten cells, players on cells 1 and 8,
// 30000 energy each, twenty turns, one game per match.
func DefaultConfig() Config {
	return Config{
		FieldSize:     10,
		P1StartPos:    1,
		P2StartPos:    8,
		StartEnergy:   30000,
		MaxTurns:      20,
		GamesPerMatch: 1,
	}
}

// ConfigFromDef converts the field section of a rule book into a Config.
func ConfigFromDef(def gamedata.FieldDef) Config {
	return Config{
		FieldSize:     def.Size,
		P1StartPos:    def.P1Start,
		P2StartPos:    def.P2Start,
		StartEnergy:   def.StartEnergy,
		MaxTurns:      def.MaxTurns,
		GamesPerMatch: def.GamesPerMatch,
	}
}

// Validate checks every parameter and reports all problems at once.
func (c Config) Validate() error {
	var errs []string

	if c.FieldSize < MinFieldSize {
		errs = append(errs, fmt.Sprintf("field size must be >= %d", MinFieldSize))
	}
	if c.P1StartPos < 0 || c.P1StartPos >= c.FieldSize {
		errs = append(errs, "p1 start must lie on the field")
	}
	if c.P2StartPos < 0 || c.P2StartPos >= c.FieldSize {
		errs = append(errs, "p2 start must lie on the field")
	}
	if c.P1StartPos >= c.P2StartPos {
		errs = append(errs, "p1 start must be left of p2 start")
	}
	if c.StartEnergy <= 0 {
		errs = append(errs, "start energy must be > 0")
	}
	if c.MaxTurns <= 0 {
		errs = append(errs, "max turns must be > 0")
	}
	if c.GamesPerMatch <= 0 {
		errs = append(errs, "games per match must be > 0")
	}

	if len(errs) > 0 {
		return violation(InvariantConfig, "%s", strings.Join(errs, "; "))
	}
	return nil
}

// StartState returns the opening position of every game.
func (c Config) StartState() ActiveState {
	return ActiveState{
		P1: PlayerState{Pos: c.P1StartPos, Energy: c.StartEnergy},
		P2: PlayerState{Pos: c.P2StartPos, Energy: c.StartEnergy},
	}
}
