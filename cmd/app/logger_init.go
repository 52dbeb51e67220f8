package main

import (
	"github.com/emberhall/bazaar/internal/config"
	"github.com/emberhall/bazaar/internal/handler"
	"github.com/emberhall/bazaar/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	environment := "prod"
	if cfg.LogLevel == "DEBUG" || cfg.LogLevel == "debug" {
		environment = "dev"
	}

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"bazaar",
		handler.Version,
		environment,
		environment == "dev",
	)

	logger.InitLogger(loggerConfig)
}
