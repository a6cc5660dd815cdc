package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/perlasplay/bingo-backend/utils/logger"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
}

// Load reads .env when present and falls back to real env vars.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, reading environment variables")
	}
	return &Config{
		Port:        getEnv("PORT", "4000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
