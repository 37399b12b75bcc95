// mnkplay-engine speaks the mnk text protocol on stdin and stdout.
package main

import (
	"flag"
	"io"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog/log"

	"github.com/hailam/mnkplay/internal/config"
	"github.com/hailam/mnkplay/internal/protocol"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg.SetupLogging()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("reading commands")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(cfg *config.Config, in io.Reader, out io.Writer) error {
	return protocol.New(cfg, in, out).Run()
}
