package main

import (
	"github.com/rs/zerolog/log"

	"slotbook/config"
	"slotbook/di"
	"slotbook/helper"
	"slotbook/shared/logger"
)

// @title Slotbook API
// @version 1.0
// @description Slot and reservation administration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
