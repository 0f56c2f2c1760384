package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the application's configuration.
type Config struct {
	DBPath      string
	DBDebug     bool
	PatternFile string
	History     bool
	HistoryMax  int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	cfg := &Config{
		DBPath:      os.Getenv("MEDREX_DB"),
		PatternFile: os.Getenv("MEDREX_PATTERN_FILE"),
		History:     true, // Default value
		HistoryMax:  20,   // Default value
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}

	if debugStr := os.Getenv("MEDREX_DB_DEBUG"); debugStr != "" {
		if debug, err := strconv.ParseBool(debugStr); err == nil {
			cfg.DBDebug = debug
		}
	}

	if historyStr := os.Getenv("MEDREX_HISTORY"); historyStr != "" {
		if history, err := strconv.ParseBool(historyStr); err == nil {
			cfg.History = history
		}
	}

	if maxStr := os.Getenv("MEDREX_HISTORY_MAX"); maxStr != "" {
		if max, err := strconv.Atoi(maxStr); err == nil && max > 0 {
			cfg.HistoryMax = max
		}
	}

	return cfg
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "medrex", "history.db")
	}
	return filepath.Join(homeDir, ".medrex", "history.db")
}
