package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads the env file named by ENV_FILE (default .env) when it exists.
// Deployments that inject env vars directly run without any file.
func Load() {
	file := os.Getenv("ENV_FILE")
	if file == "" {
		file = ".env"
	}
	if _, err := os.Stat(file); err == nil {
		if err := godotenv.Load(file); err != nil {
			log.Fatalf("Cannot load %s: %v", file, err)
		}
	}
}

// MustGet fails fast on a missing required variable, before anything else
// starts up.
func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("%s is not set in environment", key)
	}
	return val
}

func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
