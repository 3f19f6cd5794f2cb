// Package config loads engine configuration from the environment. A local
// .env file is honored when present; real deployments set the variables
// directly.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs to wire itself up.
type Config struct {
	// DatabaseURL selects the store backend: a postgres:// URL for
	// deployments, anything else is treated as a SQLite path.
	DatabaseURL string

	// RedisAddr enables the readiness snapshot cache when non-empty.
	RedisAddr     string
	RedisPassword string

	// LogMode selects the zap encoder ("prod" or "dev").
	LogMode string

	// WeakThreshold overrides the readiness weak-topic threshold.
	WeakThreshold float64

	// ReadinessCacheTTL bounds snapshot cache staleness.
	ReadinessCacheTTL time.Duration
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL:       getEnv("DATABASE_URL", "quizengine.db"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		LogMode:           getEnv("LOG_MODE", "dev"),
		WeakThreshold:     getEnvAsFloat("READINESS_WEAK_THRESHOLD", 60),
		ReadinessCacheTTL: time.Duration(getEnvAsInt("READINESS_CACHE_TTL_SECONDS", 300)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
