package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/helper"
	"hotelier/shared/logger"
)

func main() {
	logger.InitLogger()

	down := flag.Bool("down", false, "roll back the most recent migration instead of applying pending ones")
	flag.Parse()

	if err := config.Init(); err != nil {
		log.Warn().Err(err).Msg("Continuing without .env file")
	}

	conf := config.Get()

	if *down {
		if err := helper.MigrateDown(conf); err != nil {
			log.Fatal().Err(err).Msg("Migration rollback failed")
		}

		return
	}

	if err := helper.MigrateUp(conf); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
