package main

import (
	"github.com/perlasplay/bingo-backend/config"
	"github.com/perlasplay/bingo-backend/utils/logger"
)

func main() {
	cfg := config.Load()
	config.SetupDatabase(cfg.DatabaseURL) // connects + migrates
	logger.Info("database migration completed successfully")
}
