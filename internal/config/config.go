package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	// Optional rolling log file. Empty means stdout only.
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	MatchDuration time.Duration
	RespawnDelay  time.Duration
	PhysicsHz     int
	BroadcastHz   int

	MaxConnsPerIP     int
	PublicURL         string
	DeadlockDetection bool
}

// Load reads the configuration from the environment. Values from a .env file
// in the working directory are applied first when one exists; real
// environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	port := getEnvInt("PORT", 8080)
	return &Config{
		Port:      port,
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),

		MatchDuration: getEnvDuration("MATCH_DURATION", 300*time.Second),
		RespawnDelay:  getEnvDuration("RESPAWN_DELAY", 5*time.Second),
		PhysicsHz:     getEnvInt("PHYSICS_HZ", 60),
		BroadcastHz:   getEnvInt("BROADCAST_HZ", 30),

		MaxConnsPerIP:     getEnvInt("MAX_CONNS_PER_IP", 8),
		PublicURL:         getEnv("PUBLIC_URL", "http://localhost:"+strconv.Itoa(port)),
		DeadlockDetection: getEnvBool("DEADLOCK_DETECTION", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("90s", "5m") or a bare number
// of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if s, err := strconv.Atoi(v); err == nil && s > 0 {
		return time.Duration(s) * time.Second
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
