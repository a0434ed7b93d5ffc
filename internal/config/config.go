package config

import (
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the organizer.
type Config struct {
	Addr         string
	DatabaseURL  string
	SessionTTL   time.Duration
	SessionSweep time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:         strings.TrimSpace(os.Getenv("ORGANIZER_ADDR")),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionTTL:   parseHours(strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))),
		SessionSweep: parseHours(strings.TrimSpace(os.Getenv("SESSION_SWEEP_HOURS"))),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "organizer.db"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 72 * time.Hour
	}
	if cfg.SessionSweep == 0 {
		cfg.SessionSweep = time.Hour
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
