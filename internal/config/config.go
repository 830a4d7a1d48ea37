package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at startup.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret []byte

	AnthropicModel     string
	MockInterpreter    bool
	InterpreterTimeout time.Duration

	SeedCatalog bool
}

// Load reads configuration from a .env file when present, falling back to
// process environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "career_user"),
		DBPassword: getEnv("DB_PASSWORD", "career_password"),
		DBName:     getEnv("DB_NAME", "career_profiling"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: []byte(getEnv("JWT_SECRET", "career-profiling-staging-signing-key-2026")),

		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-opus-4-5-20251101"),
		MockInterpreter:    getEnv("MOCK_INTERPRETER", "") == "true",
		InterpreterTimeout: getDurationSeconds("INTERPRETER_TIMEOUT_SECONDS", 30),

		SeedCatalog: getEnv("SEED_CATALOG", "true") != "false",
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDurationSeconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
