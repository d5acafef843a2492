package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// FieldDef holds the fixed parameters of a duel.
type FieldDef struct {
	Size          int `yaml:"size"`            // Number of cells on the line
	P1Start       int `yaml:"p1_start"`        // Opening cell of player 1
	P2Start       int `yaml:"p2_start"`        // Opening cell of player 2
	StartEnergy   int `yaml:"start_energy"`    // Energy budget of each player
	MaxTurns      int `yaml:"max_turns"`       // Turn on which the game is called
	GamesPerMatch int `yaml:"games_per_match"` // Games played per match
}

// PlayerDef describes how a side is displayed.
type PlayerDef struct {
	ID    string `yaml:"id"`    // "player-1" or "player-2"
	Name  string `yaml:"name"`  // Display name
	Glyph string `yaml:"glyph"` // Single character drawn on the field
	Color string `yaml:"color"` // Hex color code (e.g., "#FFD700")
}

// GlyphRune returns the glyph as a rune for rendering.
func (p *PlayerDef) GlyphRune() rune {
	if len(p.Glyph) == 0 {
		return '?'
	}
	return rune(p.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (p *PlayerDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(p.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// RuleDef is one row of the decision table. Empty columns match anything.
type RuleDef struct {
	Sep     []string `yaml:"sep,omitempty"`
	P1      []string `yaml:"p1,omitempty"`
	P2      []string `yaml:"p2,omitempty"`
	P1Wall  []string `yaml:"p1_wall,omitempty"`
	P2Wall  []string `yaml:"p2_wall,omitempty"`
	Outcome string   `yaml:"outcome"`
}

// RulesFile represents the structure of rules.yaml.
type RulesFile struct {
	Version string      `yaml:"version"`
	Field   FieldDef    `yaml:"field"`
	Players []PlayerDef `yaml:"players"`
	Rules   []RuleDef   `yaml:"rules"`
}

// Player returns the display definition for a side, or nil if not found.
func (f *RulesFile) Player(id string) *PlayerDef {
	for i := range f.Players {
		if f.Players[i].ID == id {
			return &f.Players[i]
		}
	}
	return nil
}

// Validate checks the structure of the rule book. Vocabulary inside rule rows is
// checked when the table is compiled.
func (f *RulesFile) Validate() error {
	var errs []string

	if f.Version == "" {
		errs = append(errs, "version is required")
	}
	if f.Field.Size <= 0 {
		errs = append(errs, "field.size must be > 0")
	}
	if f.Field.StartEnergy <= 0 {
		errs = append(errs, "field.start_energy must be > 0")
	}
	if f.Field.MaxTurns <= 0 {
		errs = append(errs, "field.max_turns must be > 0")
	}
	if f.Field.GamesPerMatch <= 0 {
		errs = append(errs, "field.games_per_match must be > 0")
	}

	for _, id := range []string{"player-1", "player-2"} {
		p := f.Player(id)
		if p == nil {
			errs = append(errs, fmt.Sprintf("players: %s is missing", id))
			continue
		}
		if p.Glyph == "" {
			errs = append(errs, fmt.Sprintf("players: %s needs a glyph", id))
		}
		if _, err := ParseHexColor(p.Color); err != nil {
			errs = append(errs, fmt.Sprintf("players: %s: %v", id, err))
		}
	}

	if len(f.Rules) == 0 {
		errs = append(errs, "rules must not be empty")
	}
	for i, r := range f.Rules {
		if r.Outcome == "" {
			errs = append(errs, fmt.Sprintf("rules[%d].outcome is required", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("rule book validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadRules loads and validates the embedded rules.yaml.
func LoadRules() (*RulesFile, error) {
	file, err := Load[RulesFile]("rules.yaml")
	if err != nil {
		return nil, err
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// MustLoadRules loads the rule book, panicking on error.
func MustLoadRules() *RulesFile {
	file, err := LoadRules()
	if err != nil {
		panic(err)
	}
	return file
}
