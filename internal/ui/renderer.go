package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/lunge/internal/duel"
	"github.com/samdwyer/lunge/internal/gamedata"
)

const (
	wallRune  = '|'
	floorRune = '.'
	clashRune = '*'
)

// Frame is one picture of a duel: the state at the start of a turn and the
// moves made from it, or the final state with the ending.
type Frame struct {
	Title     string
	Turn      int
	Turns     int
	FieldSize int
	State     duel.ActiveState
	Moves     *duel.MovePair
	End       *duel.EndState
}

// Status describes the frame in one line.
func (f Frame) Status() string {
	if f.End != nil {
		return fmt.Sprintf("%s: %s (%s)", f.End.Cause, f.End.Winner(), f.End.Explain())
	}
	if f.Moves != nil {
		return fmt.Sprintf("turn %d/%d: p1 %s, p2 %s", f.Turn, f.Turns, f.Moves.P1, f.Moves.P2)
	}
	return fmt.Sprintf("turn %d/%d", f.Turn, f.Turns)
}

// FieldLine draws the field as text: walls at both ends, one rune per cell.
// Players sharing a cell are drawn as a clash.
func FieldLine(fieldSize int, s duel.ActiveState, p1, p2 rune) string {
	line := make([]rune, 0, fieldSize+2)
	line = append(line, wallRune)
	for x := 0; x < fieldSize; x++ {
		switch {
		case x == s.P1.Pos && x == s.P2.Pos:
			line = append(line, clashRune)
		case x == s.P1.Pos:
			line = append(line, p1)
		case x == s.P2.Pos:
			line = append(line, p2)
		default:
			line = append(line, floorRune)
		}
	}
	line = append(line, wallRune)
	return string(line)
}

// side is how one player is drawn.
type side struct {
	glyph rune
	style tcell.Style
}

func sideOf(def *gamedata.PlayerDef, fallback rune, color tcell.Color) side {
	if def != nil {
		fallback = def.GlyphRune()
		color = def.TCellColor()
	}
	return side{glyph: fallback, style: tcell.StyleDefault.Foreground(color).Bold(true)}
}

// Renderer handles drawing the duel to the screen.
type Renderer struct {
	screen *Screen
	p1     side
	p2     side
}

// NewRenderer creates a renderer drawing players as the rule book defines them.
func NewRenderer(screen *Screen, book *gamedata.RulesFile) *Renderer {
	return &Renderer{
		screen: screen,
		p1:     sideOf(book.Player("player-1"), '1', tcell.ColorYellow),
		p2:     sideOf(book.Player("player-2"), '2', tcell.ColorAqua),
	}
}

// Render draws the frame to the screen.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	r.RenderMessage(f.Title, 0)

	line := []rune(FieldLine(f.FieldSize, f.State, r.p1.glyph, r.p2.glyph))
	for x, ch := range line {
		r.screen.SetContent(x, 2, ch, r.cellStyle(ch))
	}

	r.RenderMessage(fmt.Sprintf("p1 energy %d", f.State.P1.Energy), 4)
	r.RenderMessage(fmt.Sprintf("p2 energy %d", f.State.P2.Energy), 5)
	r.RenderMessage(f.Status(), 7)

	_, h := r.screen.Size()
	r.RenderMessage("←/→ step  a autoplay  q quit", h-1)

	r.screen.Show()
}

// cellStyle returns the appropriate style for a field rune.
func (r *Renderer) cellStyle(ch rune) tcell.Style {
	switch ch {
	case r.p1.glyph:
		return r.p1.style
	case r.p2.glyph:
		return r.p2.style
	case clashRune:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case wallRune:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}
