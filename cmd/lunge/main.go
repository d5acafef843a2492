// Package main is the entry point for lunge.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samdwyer/lunge/internal/duel"
	"github.com/samdwyer/lunge/internal/game"
	"github.com/samdwyer/lunge/internal/gamedata"
	"github.com/samdwyer/lunge/internal/strategy"
	"github.com/samdwyer/lunge/internal/telemetry"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// .env is optional; variables may be set directly.
	envErr := godotenv.Load()

	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if envErr != nil {
		log.Debug().Err(envErr).Msg(".env file not loaded")
	}

	var cfg game.Config
	flag.StringVar(&cfg.P1, "p1", "aggressor", "strategy for player 1")
	flag.StringVar(&cfg.P2, "p2", "random", "strategy for player 2")
	flag.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 picks one)")
	flag.BoolVar(&cfg.Watch, "watch", false, "replay the first game in the terminal")
	flag.Parse()

	setupOTelEnv()

	ctx := log.Logger.WithContext(context.Background())

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry setup failed, running without tracing")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("telemetry shutdown failed")
			}
		}()
	}

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("lunge failed")
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg game.Config) error {
	book, err := gamedata.LoadRules()
	if err != nil {
		return err
	}
	field, table, err := duel.LoadRuleBook()
	if err != nil {
		return err
	}
	if cfg.Field, err = game.ApplyEnv(field); err != nil {
		return err
	}

	resolver, err := duel.NewResolver(cfg.Field, table, duel.WithLogger(log.Logger.With().Str("component", "resolver").Logger()))
	if err != nil {
		return err
	}

	registry, err := strategy.DefaultRegistry()
	if err != nil {
		return err
	}
	p1, err := registry.ByName(cfg.P1)
	if err != nil {
		return err
	}
	p2, err := registry.ByName(cfg.P2)
	if err != nil {
		return err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	log.Info().
		Str("p1", cfg.P1).
		Str("p2", cfg.P2).
		Int64("seed", cfg.Seed).
		Int("games", cfg.Field.GamesPerMatch).
		Int("field", cfg.Field.FieldSize).
		Msg("starting match")

	match, err := game.PlayMatch(ctx, resolver, p1, p2, cfg.Field.GamesPerMatch, cfg.Seed)
	if err != nil {
		return err
	}

	for i, g := range match.Games {
		log.Info().
			Int("game", i+1).
			Int("turns", len(g.Turns)).
			Str("end", g.End.Cause.String()).
			Str("winner", g.Winner()).
			Str("how", g.End.Explain()).
			Msg("game over")
	}

	if cfg.Watch {
		replay, err := game.NewReplay(match.Games[0], cfg.Field, book)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		return replay.Run(ctx)
	}
	return nil
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set.
// Without a key the standard OTEL_* variables are left alone.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_LUNGE_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := getEnv("HONEYCOMB_LUNGE_DATASET", "lunge")
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io"))
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
