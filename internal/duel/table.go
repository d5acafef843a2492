package duel

import (
	"fmt"
	"strings"

	"github.com/samdwyer/lunge/internal/gamedata"
)

// Separation buckets the open gap between the players.
type Separation int

const (
	S0 Separation = iota
	S1
	S2
	S3
	// SG is any gap of four or more cells, out of reach of every collision.
	SG
)

const numSeparations = 5

// SeparationOf buckets an open gap.
func SeparationOf(dist int) Separation {
	switch {
	case dist <= 0:
		return S0
	case dist >= 4:
		return SG
	default:
		return Separation(dist)
	}
}

// String returns the bucket name used in rule books.
func (s Separation) String() string {
	switch s {
	case S0, S1, S2, S3:
		return fmt.Sprintf("s%d", int(s))
	case SG:
		return "sg"
	default:
		return "unknown"
	}
}

// WallOrientation records whether a player has their back to their wall.
type WallOrientation int

const (
	NotAgainst WallOrientation = iota
	Against
)

const numWalls = 2

// WallOf classifies a distance from the player's own wall.
func WallOf(distFromWall int) WallOrientation {
	if distFromWall > 0 {
		return NotAgainst
	}
	return Against
}

// String returns the orientation name used in rule books.
func (w WallOrientation) String() string {
	switch w {
	case NotAgainst:
		return "not_against"
	case Against:
		return "against"
	default:
		return "unknown"
	}
}

// Transition is the category of resolution the rule table selects for a turn.
type Transition int

const (
	ActiveNaiveMove Transition = iota + 1
	ActiveBounce
	ActiveP1Push
	ActiveP2Push
	ActiveWall
	EndP1Victory
	EndP2Victory
	EndP1Pin
	EndP2Pin
	EndP1Survive
	EndP2Survive
	EndEnergy
)

var transitionNames = map[Transition]string{
	ActiveNaiveMove: "naive_move",
	ActiveBounce:    "bounce",
	ActiveP1Push:    "p1_push",
	ActiveP2Push:    "p2_push",
	ActiveWall:      "wall_clamp",
	EndP1Victory:    "p1_victory",
	EndP2Victory:    "p2_victory",
	EndP1Pin:        "p1_pin",
	EndP2Pin:        "p2_pin",
	EndP1Survive:    "p1_survive",
	EndP2Survive:    "p2_survive",
	EndEnergy:       "energy_end",
}

var transitionSwaps = map[Transition]Transition{
	ActiveP1Push: ActiveP2Push,
	ActiveP2Push: ActiveP1Push,
	EndP1Victory: EndP2Victory,
	EndP2Victory: EndP1Victory,
	EndP1Pin:     EndP2Pin,
	EndP2Pin:     EndP1Pin,
	EndP1Survive: EndP2Survive,
	EndP2Survive: EndP1Survive,
}

// Transitions returns every transition in declaration order.
func Transitions() []Transition {
	all := make([]Transition, 0, len(transitionNames))
	for t := ActiveNaiveMove; t <= EndEnergy; t++ {
		all = append(all, t)
	}
	return all
}

// String returns the snake-case transition name.
func (t Transition) String() string {
	if name, ok := transitionNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is a declared transition.
func (t Transition) Valid() bool {
	_, ok := transitionNames[t]
	return ok
}

// Swap returns the transition with the players' roles exchanged.
func (t Transition) Swap() Transition {
	if s, ok := transitionSwaps[t]; ok {
		return s
	}
	return t
}

// Key indexes the rule table.
type Key struct {
	Sep    Separation
	P1     MoveKind
	P2     MoveKind
	P1Wall WallOrientation
	P2Wall WallOrientation
}

// Mirror exchanges the players' roles in the key. Separation is unchanged.
func (k Key) Mirror() Key {
	return Key{Sep: k.Sep, P1: k.P2, P2: k.P1, P1Wall: k.P2Wall, P2Wall: k.P1Wall}
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s/%s %s/%s", k.Sep, k.P1, k.P2, k.P1Wall, k.P2Wall)
}

func (k Key) valid() bool {
	return k.Sep >= S0 && k.Sep <= SG &&
		k.P1.Valid() && k.P2.Valid() &&
		(k.P1Wall == NotAgainst || k.P1Wall == Against) &&
		(k.P2Wall == NotAgainst || k.P2Wall == Against)
}

// AllKeys enumerates every cell of the rule table.
func AllKeys() []Key {
	keys := make([]Key, 0, numSeparations*numMoveKinds*numMoveKinds*numWalls*numWalls)
	for sep := S0; sep <= SG; sep++ {
		for _, p1 := range MoveKinds() {
			for _, p2 := range MoveKinds() {
				for w1 := NotAgainst; w1 <= Against; w1++ {
					for w2 := NotAgainst; w2 <= Against; w2++ {
						keys = append(keys, Key{Sep: sep, P1: p1, P2: p2, P1Wall: w1, P2Wall: w2})
					}
				}
			}
		}
	}
	return keys
}

// Rule is one row of the decision table. An empty column matches anything.
type Rule struct {
	Seps    []Separation
	P1      []MoveKind
	P2      []MoveKind
	P1Wall  []WallOrientation
	P2Wall  []WallOrientation
	Outcome Transition
}

// Matches reports whether the row covers the key.
func (r Rule) Matches(k Key) bool {
	return matchAny(r.Seps, k.Sep) &&
		matchAny(r.P1, k.P1) && matchAny(r.P2, k.P2) &&
		matchAny(r.P1Wall, k.P1Wall) && matchAny(r.P2Wall, k.P2Wall)
}

func matchAny[T comparable](column []T, v T) bool {
	if len(column) == 0 {
		return true
	}
	for _, c := range column {
		if c == v {
			return true
		}
	}
	return false
}

// Table is the compiled rule book: one transition for every key.
type Table struct {
	cells [numSeparations][numMoveKinds][numMoveKinds][numWalls][numWalls]Transition
}

func (t *Table) cell(k Key) *Transition {
	return &t.cells[k.Sep][k.P1][k.P2][k.P1Wall][k.P2Wall]
}

// Lookup returns the transition for a key. A key the table does not cover is an
// invariant violation, never a default outcome.
func (t *Table) Lookup(k Key) (Transition, error) {
	if !k.valid() {
		return 0, violation(InvariantTableTotal, "key %s lies outside the table", k)
	}
	tr := *t.cell(k)
	if !tr.Valid() {
		return 0, violation(InvariantTableTotal, "no rule covers %s", k)
	}
	return tr, nil
}

// CompileTable fills a table from ordered rows; the first row matching a key wins.
// A row that claims no key is rejected as shadowed, and the finished table must
// cover every key.
func CompileTable(rules []Rule) (*Table, error) {
	var t Table
	keys := AllKeys()

	for i, r := range rules {
		if !r.Outcome.Valid() {
			return nil, fmt.Errorf("rule %d: undeclared outcome %d", i, int(r.Outcome))
		}
		claimed := 0
		for _, k := range keys {
			c := t.cell(k)
			if *c != 0 || !r.Matches(k) {
				continue
			}
			*c = r.Outcome
			claimed++
		}
		if claimed == 0 {
			return nil, fmt.Errorf("rule %d (%s) is shadowed by earlier rules", i, r.Outcome)
		}
	}

	var missing []string
	for _, k := range keys {
		if *t.cell(k) == 0 {
			missing = append(missing, k.String())
		}
	}
	if len(missing) > 0 {
		return nil, violation(InvariantTableTotal, "%d keys uncovered: %s", len(missing), strings.Join(missing, "; "))
	}
	return &t, nil
}

// RulesFromDefs parses rule-book rows into Rules.
func RulesFromDefs(defs []gamedata.RuleDef) ([]Rule, error) {
	rules := make([]Rule, 0, len(defs))
	for i, def := range defs {
		r, err := ruleFromDef(def)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func ruleFromDef(def gamedata.RuleDef) (Rule, error) {
	var (
		r   Rule
		err error
	)
	if r.Seps, err = parseAll(def.Sep, parseSeparation); err != nil {
		return Rule{}, err
	}
	if r.P1, err = parseAll(def.P1, ParseMoveKind); err != nil {
		return Rule{}, err
	}
	if r.P2, err = parseAll(def.P2, ParseMoveKind); err != nil {
		return Rule{}, err
	}
	if r.P1Wall, err = parseAll(def.P1Wall, parseWall); err != nil {
		return Rule{}, err
	}
	if r.P2Wall, err = parseAll(def.P2Wall, parseWall); err != nil {
		return Rule{}, err
	}
	if r.Outcome, err = parseTransition(def.Outcome); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func parseAll[T any](names []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(names))
	for _, n := range names {
		v, err := parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseSeparation(s string) (Separation, error) {
	for sep := S0; sep <= SG; sep++ {
		if sep.String() == s {
			return sep, nil
		}
	}
	return 0, fmt.Errorf("unknown separation %q", s)
}

func parseWall(s string) (WallOrientation, error) {
	switch s {
	case "against":
		return Against, nil
	case "not_against":
		return NotAgainst, nil
	}
	return 0, fmt.Errorf("unknown wall orientation %q", s)
}

func parseTransition(s string) (Transition, error) {
	for t, name := range transitionNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// LoadRuleBook reads the embedded rule book and compiles its config and table.
func LoadRuleBook() (Config, *Table, error) {
	book, err := gamedata.LoadRules()
	if err != nil {
		return Config{}, nil, err
	}
	rules, err := RulesFromDefs(book.Rules)
	if err != nil {
		return Config{}, nil, err
	}
	table, err := CompileTable(rules)
	if err != nil {
		return Config{}, nil, err
	}
	cfg := ConfigFromDef(book.Field)
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	return cfg, table, nil
}

// MustLoadRuleBook is LoadRuleBook, panicking on error.
func MustLoadRuleBook() (Config, *Table) {
	cfg, table, err := LoadRuleBook()
	if err != nil {
		panic(err)
	}
	return cfg, table
}
