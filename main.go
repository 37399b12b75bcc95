// mnkplay plays m,n,k-games in the terminal, runs engine matches and keeps
// their statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/mnkplay/internal/arena"
	"github.com/hailam/mnkplay/internal/config"
	"github.com/hailam/mnkplay/internal/storage"
	"github.com/hailam/mnkplay/internal/ui"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	arenaMode  = flag.Bool("arena", false, "play a series of engine games instead of the interactive shell")
	opponent   = flag.String("opponent", "random", "arena opponent of the engine: random or engine")
	showStats  = flag.Bool("stats", false, "print recorded match statistics and exit")
	noStore    = flag.Bool("nostore", false, "do not record games")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg.SetupLogging()

	var store *storage.Storage
	if !*noStore || *showStats {
		store, err = storage.Open(cfg.DBDir)
		if err != nil {
			log.Fatal().Err(err).Msg("opening storage")
		}
		defer store.Close()
	}

	switch {
	case *showStats:
		err = printStats(store)
	case *arenaMode:
		err = runArena(cfg, store)
	default:
		err = runShell(cfg, store)
	}
	if err != nil {
		log.Error().Err(err).Msg("")
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

func recorder(store *storage.Storage) ui.Recorder {
	if store == nil {
		return nil
	}
	return store
}

func runShell(cfg *config.Config, store *storage.Storage) error {
	g, err := ui.NewGame(cfg, os.Stdout, ui.NewRenderer(os.Stdout), recorder(store))
	if err != nil {
		return err
	}
	return g.Run()
}

func runArena(cfg *config.Config, store *storage.Storage) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.With().Str("component", "engine").Logger()
	a := arena.EngineAgent{Budget: cfg.Budget(), Safety: cfg.SafetyFactor, Logger: logger}
	var b arena.Agent
	switch *opponent {
	case "random":
		b = arena.RandomAgent{}
	case "engine":
		b = arena.EngineAgent{Label: "engine2", Budget: cfg.Budget(), Safety: cfg.SafetyFactor, Logger: logger}
	default:
		return errors.Errorf("unknown opponent %q", *opponent)
	}

	settings := arena.Settings{
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		K:       cfg.K,
		Games:   cfg.Games,
		Workers: cfg.Workers,
		Weights: cfg.BoardWeights(),
	}
	var rec arena.Recorder
	if store != nil {
		rec = store
	}
	ar := arena.New(settings, a, b, rec)
	ar.OnGame = func(g arena.Game) {
		fmt.Printf("game %d: %s first, %s after %d plies\n", g.Index, g.First, g.State, len(g.Moves))
	}

	summary, err := ar.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func printStats(store *storage.Storage) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("no games recorded")
		return nil
	}
	keys := lo.Keys(all)
	slices.Sort(keys)
	for _, k := range keys {
		s := all[k]
		fmt.Printf("%-32s games %4d  first %4d  second %4d  draws %4d  first-mover score %5.1f%%  avg plies %5.1f  wins %v\n",
			k, s.GamesPlayed, s.FirstWins, s.SecondWins, s.Draws, s.FirstMoverScore(), s.AveragePlies(), s.WinsByPlayer)
	}
	return nil
}
