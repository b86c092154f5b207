// internal/config/config.go
//
// Environment-based configuration with defaults. godotenv is loaded in
// main before this runs, so a local .env file works in development.

package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Addr      string   // HTTP listen address
	ChatAddr  string   // chat connector websocket address
	DBPath    string   // SQLite file; empty disables persistence
	DictFiles []string // extra dictionary JSON files

	RoundSeconds   int
	ResultSeconds  int
	RestartSeconds int

	LogLevel string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Addr:           ":" + getEnv("PORT", "5175"),
		ChatAddr:       getEnv("CHAT_WS_ADDR", "localhost:62024"),
		DBPath:         getEnv("DB_PATH", "./data/katakilat.db"),
		DictFiles:      splitList(getEnv("DICT_FILES", "")),
		RoundSeconds:   getEnvInt("ROUND_SECONDS", 45),
		ResultSeconds:  getEnvInt("RESULT_SECONDS", 8),
		RestartSeconds: getEnvInt("RESTART_SECONDS", 30),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
