package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"amazons/api"
	"amazons/engine"
	"amazons/experiments"
	"amazons/game"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "selfplay", "selfplay, serve, budget or arena")
	configPath := flag.String("config", "", "optional YAML config file")
	games := flag.Int("games", 1, "number of self-play games")
	profiling := flag.Bool("profile", false, "write a CPU profile for this run")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	if *profiling {
		defer profile.Start().Stop()
	}

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = engine.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	switch *mode {
	case "selfplay":
		runSelfPlay(cfg, *games)
	case "serve":
		runServer(cfg)
	case "budget":
		experiments.RunBudgetExperiment()
	case "arena":
		experiments.RunArenaExperiment()
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		flag.Usage()
		os.Exit(2)
	}
}

func runSelfPlay(cfg engine.Config, games int) {
	wins := map[game.Player]int{}
	for i := 0; i < games; i++ {
		result, err := engine.PlayLocalGame(cfg, cfg, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("self-play game failed")
		}
		wins[result.Winner]++
	}
	log.Info().
		Int("games", games).
		Int("black_wins", wins[game.Black]).
		Int("white_wins", wins[game.White]).
		Msg("self-play finished")
}

func runServer(cfg engine.Config) {
	server := api.NewServer(cfg)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
