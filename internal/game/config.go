package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samdwyer/lunge/internal/duel"
)

// Config holds match configuration options.
type Config struct {
	// Field is the duel geometry and limits, usually from the rule book.
	Field duel.Config
	// P1 and P2 name the strategies playing each side.
	P1 string
	P2 string
	// Seed for random number generation. Game i of a match uses Seed+i.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// Watch opens the terminal replay of the first game when the match ends.
	Watch bool
}

// Environment variables that override the rule book's field section.
const (
	EnvFieldSize   = "LUNGE_FIELD_SIZE"
	EnvP1Start     = "LUNGE_P1_START"
	EnvP2Start     = "LUNGE_P2_START"
	EnvStartEnergy = "LUNGE_START_ENERGY"
	EnvMaxTurns    = "LUNGE_MAX_TURNS"
	EnvGames       = "LUNGE_GAMES"
)

// ApplyEnv returns base with any LUNGE_* environment overrides applied.
// The result is validated; every malformed variable is reported.
func ApplyEnv(base duel.Config) (duel.Config, error) {
	cfg := base
	overrides := []struct {
		key string
		dst *int
	}{
		{EnvFieldSize, &cfg.FieldSize},
		{EnvP1Start, &cfg.P1StartPos},
		{EnvP2Start, &cfg.P2StartPos},
		{EnvStartEnergy, &cfg.StartEnergy},
		{EnvMaxTurns, &cfg.MaxTurns},
		{EnvGames, &cfg.GamesPerMatch},
	}

	var errs []string
	for _, o := range overrides {
		v := strings.TrimSpace(os.Getenv(o.key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q is not an integer", o.key, v))
			continue
		}
		*o.dst = n
	}
	if len(errs) > 0 {
		return base, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
