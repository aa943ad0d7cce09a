package config

import (
	"os"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	SeedSamples bool
}

func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "./lifedash.db"),
		SeedSamples: getEnv("SEED_SAMPLE_DATA", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
