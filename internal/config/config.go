package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

const DefaultTimeout = 30 // seconds

type Config struct {
	ADBPath        string `toml:"adb_path"`
	DefaultSerial  string `toml:"default_serial"`
	DefaultTimeout int    `toml:"default_timeout"`
	OutputDirLogs  string `toml:"output_dir_logs"`
	OutputDirShots string `toml:"output_dir_screens"`
	HistoryDB      string `toml:"history_db"`
}

// Load builds the effective configuration: defaults, then ~/.adbhelper.toml
// if present, then ADBHELPER_* environment variables on top.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DefaultTimeout: DefaultTimeout,
		OutputDirLogs:  "logs",
		OutputDirShots: "screenshots",
		HistoryDB:      filepath.Join(home, ".config", "adbhelper", "history.db"),
	}

	cfgPath := filepath.Join(home, ".adbhelper.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)

	// expand ~ in paths
	cfg.ADBPath = expandHome(cfg.ADBPath, home)
	cfg.OutputDirLogs = expandHome(cfg.OutputDirLogs, home)
	cfg.OutputDirShots = expandHome(cfg.OutputDirShots, home)
	cfg.HistoryDB = expandHome(cfg.HistoryDB, home)

	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = DefaultTimeout
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADBHELPER_ADB_PATH"); v != "" {
		cfg.ADBPath = v
	}
	if v := os.Getenv("ADBHELPER_DEFAULT_SERIAL"); v != "" {
		cfg.DefaultSerial = v
	}
	if v := os.Getenv("ADBHELPER_OUTPUT_LOGS"); v != "" {
		cfg.OutputDirLogs = v
	}
	if v := os.Getenv("ADBHELPER_OUTPUT_SCREENS"); v != "" {
		cfg.OutputDirShots = v
	}
	if v := os.Getenv("ADBHELPER_HISTORY_DB"); v != "" {
		cfg.HistoryDB = v
	}
	if v := os.Getenv("ADBHELPER_DEFAULT_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultTimeout = n
		}
	}
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
