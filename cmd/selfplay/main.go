package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"goosebot/bots"
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

	opts := cfg.GooseOptions()
	opponent := bots.NewBot(cfg.GetString(config.ConfigSelfplayOpponent), opts)
	if opponent == nil {
		log.Fatal().Str("opponent", cfg.GetString(config.ConfigSelfplayOpponent)).Msg("unknown bot")
	}

	rep, err := harness.Selfplay(
		cfg.GetInt(config.ConfigSelfplayGames),
		bots.NewBot("goose", opts),
		opponent,
		cfg.GetString(config.ConfigSelfplayStart),
		cfg.GetInt(config.ConfigSelfplayMaxPlies),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
	if err := rep.WriteYAML(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("could not write report")
	}
}
