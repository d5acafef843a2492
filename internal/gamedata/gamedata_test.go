package gamedata

import (
	"math/rand"
	"strings"
	"testing"
)

func TestLoadRules(t *testing.T) {
	book, err := LoadRules()
	if err != nil {
		t.Fatalf("Failed to load rules: %v", err)
	}

	if book.Field.Size != 10 {
		t.Errorf("Expected field size 10, got %d", book.Field.Size)
	}
	if book.Field.P1Start != 1 || book.Field.P2Start != 8 {
		t.Errorf("Expected starts 1 and 8, got %d and %d", book.Field.P1Start, book.Field.P2Start)
	}
	if book.Field.StartEnergy != 30000 {
		t.Errorf("Expected start energy 30000, got %d", book.Field.StartEnergy)
	}
	if book.Field.MaxTurns != 20 {
		t.Errorf("Expected 20 max turns, got %d", book.Field.MaxTurns)
	}
	if len(book.Rules) == 0 {
		t.Fatal("Expected rule rows")
	}

	last := book.Rules[len(book.Rules)-1]
	if last.Outcome != "naive_move" {
		t.Errorf("Expected final row to be naive_move, got %q", last.Outcome)
	}
}

func TestRulesPlayers(t *testing.T) {
	book := MustLoadRules()

	for _, id := range []string{"player-1", "player-2"} {
		p := book.Player(id)
		if p == nil {
			t.Fatalf("Player %q not found", id)
		}
		if p.GlyphRune() == '?' {
			t.Errorf("Player %q has no glyph", id)
		}
		if p.TCellColor() == 0 {
			t.Errorf("Player %q has zero color", id)
		}
	}

	if book.Player("player-3") != nil {
		t.Error("Unexpected player-3")
	}
}

func TestRulesValidate(t *testing.T) {
	book := RulesFile{
		Field:   FieldDef{Size: 10, StartEnergy: 0, MaxTurns: 20, GamesPerMatch: 1},
		Players: []PlayerDef{{ID: "player-1", Glyph: "1", Color: "#FFFFFF"}},
		Rules:   []RuleDef{{P1: []string{"back"}}},
	}

	err := book.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"version", "start_energy", "player-2", "rules[0].outcome"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validation error %q does not mention %q", err, want)
		}
	}
}

func TestProfileRegistry(t *testing.T) {
	registry, err := LoadProfileRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 3 {
		t.Errorf("Expected 3 profiles, got %d", registry.Count())
	}

	random := registry.GetByID("random")
	if random == nil {
		t.Fatal("Random profile not found by ID")
	}
	if random.Name != "Random" {
		t.Errorf("Expected name 'Random', got %q", random.Name)
	}
	if random.Cost("lunge") != 1500 {
		t.Errorf("Expected lunge cost 1500, got %d", random.Cost("lunge"))
	}
	if registry.GetByID("missing") != nil {
		t.Error("Expected nil for unknown profile")
	}
}

func TestProfileRegistryRejectsDuplicates(t *testing.T) {
	profiles := []ProfileDef{
		{ID: "a", Weights: map[string]int{"stand": 1}},
		{ID: "a", Weights: map[string]int{"stand": 1}},
	}
	if _, err := NewProfileRegistry(profiles); err == nil {
		t.Error("Expected duplicate profile IDs to be rejected")
	}

	bad := []ProfileDef{{ID: "b", Weights: map[string]int{"stand": -1}}}
	if _, err := NewProfileRegistry(bad); err == nil {
		t.Error("Expected negative weights to be rejected")
	}
}

func TestProfilePickDeterministic(t *testing.T) {
	profile := MustLoadProfileRegistry().GetByID("random")
	all := func(string) bool { return true }

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 20; i++ {
		m1, ok1 := profile.Pick(rng1, all)
		m2, ok2 := profile.Pick(rng2, all)
		if !ok1 || !ok2 {
			t.Fatalf("Pick %d failed", i)
		}
		if m1 != m2 {
			t.Errorf("Pick %d mismatch: %s != %s", i, m1, m2)
		}
	}
}

func TestProfilePickRespectsAllowed(t *testing.T) {
	profile := ProfileDef{ID: "p", Weights: map[string]int{"back": 5, "lunge": 5}}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		m, ok := profile.Pick(rng, func(move string) bool { return move == "back" })
		if !ok || m != "back" {
			t.Fatalf("Pick() = %q, %v, want back", m, ok)
		}
	}

	if _, ok := profile.Pick(rng, func(string) bool { return false }); ok {
		t.Error("Pick() with nothing allowed should fail")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00BFFF", true},
		{"#FFD700", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}
