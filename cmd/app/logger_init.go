package main

import (
	"github.com/jhardel/caskwatch/internal/config"
	"github.com/jhardel/caskwatch/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "caskwatch",
	})
}
