package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Stage        string
	LogLevel     string
	ScheduleFile string
}

// Load reads the environment, first merging a .env file from the working
// directory when one exists. Variables already set take precedence.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "8080"),
		Stage:        getEnv("STAGE", "dev"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ScheduleFile: os.Getenv("TAX_SCHEDULE_FILE"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
