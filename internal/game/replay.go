package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/lunge/internal/duel"
	"github.com/samdwyer/lunge/internal/gamedata"
	"github.com/samdwyer/lunge/internal/telemetry"
	"github.com/samdwyer/lunge/internal/ui"
)

// AutoplayInterval is the delay between frames in autoplay.
const AutoplayInterval = 400 * time.Millisecond

// Frames lays the game out as one frame per turn followed by the ending.
func (g *Game) Frames(cfg duel.Config) []ui.Frame {
	title := fmt.Sprintf("%s vs %s  game %s", g.P1, g.P2, g.ID)
	frames := make([]ui.Frame, 0, len(g.Turns)+1)
	for i, t := range g.Turns {
		moves := t.Moves
		frames = append(frames, ui.Frame{
			Title:     title,
			Turn:      i + 1,
			Turns:     cfg.MaxTurns,
			FieldSize: cfg.FieldSize,
			State:     t.State,
			Moves:     &moves,
		})
	}
	end := g.End
	frames = append(frames, ui.Frame{
		Title:     title,
		Turn:      len(g.Turns),
		Turns:     cfg.MaxTurns,
		FieldSize: cfg.FieldSize,
		State:     end.State,
		End:       &end,
	})
	return frames
}

// Cursor steps through a fixed list of frames.
type Cursor struct {
	frames []ui.Frame
	pos    int
}

// NewCursor starts at the first frame.
func NewCursor(frames []ui.Frame) *Cursor {
	return &Cursor{frames: frames}
}

// Frame returns the current frame.
func (c *Cursor) Frame() ui.Frame {
	return c.frames[c.pos]
}

// Next moves forward; it returns false at the last frame.
func (c *Cursor) Next() bool {
	if c.pos+1 >= len(c.frames) {
		return false
	}
	c.pos++
	return true
}

// Prev moves back; it returns false at the first frame.
func (c *Cursor) Prev() bool {
	if c.pos == 0 {
		return false
	}
	c.pos--
	return true
}

// AtEnd reports whether the cursor is on the last frame.
func (c *Cursor) AtEnd() bool {
	return c.pos == len(c.frames)-1
}

// Replay is the terminal viewer for a recorded game.
type Replay struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cursor   *Cursor
	mode     Mode
	running  bool
}

// NewReplay opens the terminal and prepares to show g.
func NewReplay(g *Game, cfg duel.Config, book *gamedata.RulesFile) (*Replay, error) {
	if len(g.Turns) == 0 {
		return nil, fmt.Errorf("replay: game %s has no turns", g.ID)
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Replay{
		screen:   screen,
		renderer: ui.NewRenderer(screen, book),
		cursor:   NewCursor(g.Frames(cfg)),
		mode:     ModeStep,
		running:  true,
	}, nil
}

// Run shows the replay until the viewer quits.
func (r *Replay) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("replay")
	_, span := tracer.Start(ctx, "replay.run")
	defer span.End()

	done := make(chan struct{})
	go tick(r.screen, done)

	for r.running {
		r.renderer.Render(r.cursor.Frame())
		r.renderer.RenderMessage("mode: "+r.mode.String(), 9)
		r.screen.Show()

		r.handleInput()
	}

	close(done)
	span.SetAttributes(attribute.String("replay.mode", r.mode.String()))
	r.Close()
	return nil
}

// tick posts an interrupt every AutoplayInterval until done is closed.
func tick(screen *ui.Screen, done <-chan struct{}) {
	ticker := time.NewTicker(AutoplayInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}
}

// handleInput processes a single input event.
func (r *Replay) handleInput() {
	ev := r.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		r.handleKeyEvent(ev)
	case *tcell.EventInterrupt:
		if r.mode == ModeAutoplay && !r.cursor.Next() {
			r.mode = ModeStep
		}
	case *tcell.EventResize:
		r.screen.Sync()
	case nil:
		// The screen was finalized.
		r.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (r *Replay) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		r.running = false

	case tcell.KeyRight:
		r.cursor.Next()
	case tcell.KeyLeft:
		r.cursor.Prev()

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			r.running = false
		case ' ', 'l':
			r.cursor.Next()
		case 'h':
			r.cursor.Prev()
		case 'a', 'A':
			r.mode = r.mode.Toggle()
		}
	}
}

// Close cleans up replay resources.
func (r *Replay) Close() {
	if r.screen != nil {
		r.screen.Close()
		r.screen = nil
	}
}
