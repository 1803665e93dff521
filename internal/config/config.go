package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var dotenvErr error

func init() {
	// A missing .env is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		dotenvErr = err
	}
	Load()
}

var (
	ListenAddr     string
	ScoringURL     string
	ScoringMode    string
	ScoringTimeout time.Duration
	AllowedOrigins []string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string

	// Warnings collects problems found by the last Load, for the caller to log.
	Warnings []string
)

// Load (re)reads every setting from the environment.
func Load() {
	Warnings = nil
	if dotenvErr != nil {
		Warnings = append(Warnings, fmt.Sprintf("error loading .env file: %v", dotenvErr))
	}

	ListenAddr = getenv("LISTEN_ADDR", ":8080")
	ScoringURL = strings.TrimRight(getenv("SCORING_URL", "http://localhost:5000"), "/")
	ScoringMode = strings.ToLower(getenv("SCORING_MODE", "json"))
	AllowedOrigins = strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000"), ",")

	ScoringTimeout = 0
	if raw := os.Getenv("SCORING_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			Warnings = append(Warnings, fmt.Sprintf("invalid SCORING_TIMEOUT %q, uploads will not time out: %v", raw, err))
		} else {
			ScoringTimeout = d
		}
	}

	DBDriver = strings.ToLower(getenv("DB_DRIVER", "postgres"))
	DBHost = os.Getenv("DB_HOST")
	DBUser = os.Getenv("DB_USER")
	DBPassword = os.Getenv("DB_PASSWORD")
	DBName = os.Getenv("DB_NAME")
	DBPort = os.Getenv("DB_PORT")
	SQLitePath = getenv("SQLITE_PATH", "riskboard.db")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
