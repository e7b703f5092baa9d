package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process runtime configuration, loaded once at startup.
type Config struct {
	Addr        string
	DatabaseURL string
	Secret      string
	TokenTTL    time.Duration
	CORSOrigins []string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment
	_ = godotenv.Load()

	ttlMinutes := getEnvInt("TASKO_TOKEN_TTL_MINUTES", 30)

	return &Config{
		Addr:        getEnv("TASKO_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/tasko?sslmode=disable"),
		Secret:      os.Getenv("TASKO_SECRET"),
		TokenTTL:    time.Duration(ttlMinutes) * time.Minute,
		CORSOrigins: splitOrigins(getEnv("TASKO_CORS_ORIGINS", "http://localhost:3000")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
