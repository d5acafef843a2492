package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/lunge/internal/duel"
	"github.com/samdwyer/lunge/internal/strategy"
	"github.com/samdwyer/lunge/internal/telemetry"
)

// Game is the record of one finished duel: every turn in order, then the ending.
type Game struct {
	ID    uuid.UUID
	P1    string
	P2    string
	Turns []duel.Turn
	End   duel.EndState
}

// Winner returns the winning player label, or "tie".
func (g *Game) Winner() string {
	return g.End.Winner()
}

// Play runs one game to its end. Strategies are asked for moves each turn and
// the resolver judges them; an invariant error from the resolver aborts the game.
//
// Logging goes to the logger attached to ctx with zerolog's WithContext.
func Play(ctx context.Context, r *duel.Resolver, p1, p2 strategy.Strategy) (*Game, error) {
	tracer := telemetry.Tracer("game")
	g := &Game{ID: uuid.New(), P1: p1.Name(), P2: p2.Name()}

	ctx, span := tracer.Start(ctx, "game.play")
	defer span.End()
	span.SetAttributes(
		attribute.String("game.id", g.ID.String()),
		attribute.String("game.p1", g.P1),
		attribute.String("game.p2", g.P2),
	)

	log := zerolog.Ctx(ctx).With().Str("game", g.ID.String()).Logger()
	log.Debug().Str("p1", g.P1).Str("p2", g.P2).Msg("game started")

	cfg := r.Config()
	state := cfg.StartState()
	for turn := 1; ; turn++ {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "cancelled")
			return nil, err
		}

		moves := duel.MovePair{
			P1: p1.Choose(strategy.NewView(duel.P1, state, cfg, turn)),
			P2: p2.Choose(strategy.NewView(duel.P2, state, cfg, turn)),
		}

		record, next, err := playTurn(ctx, tracer, r, state, moves, turn)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invariant violated")
			log.Error().Err(err).Int("turn", turn).Msg("game aborted")
			return nil, fmt.Errorf("game %s turn %d: %w", g.ID, turn, err)
		}
		g.Turns = append(g.Turns, record)

		if end, ok := next.EndState(); ok {
			g.End = end
			span.SetAttributes(attribute.Int("game.turns", len(g.Turns)))
			span.SetAttributes(telemetry.EndAttributes(end)...)
			log.Debug().
				Int("turns", len(g.Turns)).
				Str("end", end.Cause.String()).
				Str("winner", end.Winner()).
				Msg("game finished")
			return g, nil
		}
		state, _ = next.ActiveState()
	}
}

// playTurn resolves a single turn inside its own span.
func playTurn(ctx context.Context, tracer trace.Tracer, r *duel.Resolver, state duel.ActiveState, moves duel.MovePair, turn int) (duel.Turn, duel.NextGameState, error) {
	_, span := tracer.Start(ctx, "game.turn")
	defer span.End()

	span.SetAttributes(attribute.Int("turn", turn))
	span.SetAttributes(telemetry.StateAttributes(state)...)
	span.SetAttributes(telemetry.MoveAttributes(moves)...)

	record, next, err := r.MakeMove(state, moves, turn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return duel.Turn{}, duel.NextGameState{}, err
	}
	span.SetAttributes(attribute.String("next", next.String()))
	return record, next, nil
}
