package main

import (
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/di"
	"hotelier/shared/logger"
)

func main() {
	logger.InitLogger()

	if err := config.Init(); err != nil {
		log.Warn().Err(err).Msg("Continuing without .env file")
	}

	conf := config.Get()

	logger.SetLogLevel(conf)

	server, err := di.InitializeServer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := server.Serve(); err != nil {
		log.Fatal().Err(err).Msg("Server terminated with error")
	}
}
