package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"goosebot/config"
	"goosebot/harness"
	"goosebot/shell"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	logger := harness.NewLogger(cfg.GetString(config.ConfigLogLevel))
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	sc := shell.NewShellController(cfg)
	go sc.Loop(sig)
	<-sig
	log.Info().Msg("bye")
}
