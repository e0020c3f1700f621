package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"goosebot/config"
	"goosebot/harness"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	logger := harness.NewLogger(cfg.GetString(config.ConfigLogLevel))
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msgf("Loaded config: %v", cfg.AllSettings())

	srv := harness.NewServer(cfg.GooseOptions())
	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("observation loop failed")
	}
	logger.Info().Int("games", srv.Games()).Msg("bye")
}
