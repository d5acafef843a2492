package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/lunge/internal/duel"
	"github.com/samdwyer/lunge/internal/strategy"
	"github.com/samdwyer/lunge/internal/telemetry"
)

// Match is a series of independent games between the same two strategies.
type Match struct {
	ID    uuid.UUID
	Seed  int64
	Games []*Game
}

// Tally summarises a match.
type Tally struct {
	P1Wins int
	P2Wins int
	Ties   int
	Causes map[duel.EndCause]int
}

// Tally counts wins per side, ties and end causes.
func (m *Match) Tally() Tally {
	t := Tally{Causes: make(map[duel.EndCause]int)}
	for _, g := range m.Games {
		t.Causes[g.End.Cause]++
		p, ok := g.End.Victor()
		switch {
		case !ok:
			t.Ties++
		case p == duel.P1:
			t.P1Wins++
		default:
			t.P2Wins++
		}
	}
	return t
}

// PlayMatch plays games concurrently, each with fresh strategies seeded from
// seed+i. The resolver is shared; games share no other state. Games are kept
// in the order they were numbered. The first error aborts the match.
func PlayMatch(ctx context.Context, r *duel.Resolver, p1, p2 strategy.Factory, games int, seed int64) (*Match, error) {
	if games < 1 {
		return nil, fmt.Errorf("match: need at least one game, got %d", games)
	}

	tracer := telemetry.Tracer("match")
	m := &Match{ID: uuid.New(), Seed: seed, Games: make([]*Game, games)}

	ctx, span := tracer.Start(ctx, "match.play")
	defer span.End()
	span.SetAttributes(
		attribute.String("match.id", m.ID.String()),
		attribute.Int("match.games", games),
		attribute.Int64("match.seed", seed),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := zerolog.Ctx(ctx).With().Str("match", m.ID.String()).Logger()
	ctx = log.WithContext(ctx)

	errs := make([]error, games)
	var wg sync.WaitGroup
	for i := 0; i < games; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			gameSeed := seed + int64(i)
			g, err := Play(ctx, r, p1(gameSeed), p2(gameSeed))
			if err != nil {
				errs[i] = fmt.Errorf("game %d: %w", i, err)
				cancel()
				return
			}
			m.Games[i] = g
		}(i)
	}
	wg.Wait()

	if err := firstError(errs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "match aborted")
		return nil, err
	}

	t := m.Tally()
	span.SetAttributes(
		attribute.Int("match.p1_wins", t.P1Wins),
		attribute.Int("match.p2_wins", t.P2Wins),
		attribute.Int("match.ties", t.Ties),
	)
	log.Info().
		Int("games", games).
		Int("p1_wins", t.P1Wins).
		Int("p2_wins", t.P2Wins).
		Int("ties", t.Ties).
		Msg("match finished")
	return m, nil
}

// firstError returns the error that aborted the match. Games cancelled because
// another game failed are reported only if nothing else went wrong.
func firstError(errs []error) error {
	var cancelled error
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			if cancelled == nil {
				cancelled = err
			}
		default:
			return err
		}
	}
	return cancelled
}
