package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hollowmill/werewolves/config"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file")
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Error().Err(err).Msg("bad configuration")
		os.Exit(1)
	}

	server := NewServer(cfg)

	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)

	err = server.Run(ctx)
	log.Info().Err(err).Msg("server return")
	if err != nil {
		os.Exit(1)
	}
}
