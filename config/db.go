package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/perlasplay/bingo-backend/models"
	"github.com/perlasplay/bingo-backend/utils/logger"
)

var DB *gorm.DB

// SetupDatabase connects to the database and runs migrations.
func SetupDatabase(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		logger.Log.Fatal("DATABASE_URL is required in .env or environment")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("failed to connect to DB: %v", err)
	}
	DB = db

	if err := Migrate(db); err != nil {
		logger.Log.Fatalf("migration failed: %v", err)
	}
	logger.Info("database connected and migrated")
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Card{},
		&models.Transaction{},
		&models.Deposit{},
		&models.WinClaim{},
	)
}
