package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const defaultPollIntervalMs = 100

type Config struct {
	Volume         float64 `koanf:"volume"`           // initial volume, 0.0 to 1.0
	Mode           string  `koanf:"mode"`             // "sequential" or "shuffle"
	PollIntervalMs int     `koanf:"poll_interval_ms"` // completion poll cadence
	RestoreSession bool    `koanf:"restore_session"`  // reload the previous queue on start

	Log           LogConfig           `koanf:"log"`
	Notifications NotificationsConfig `koanf:"notifications"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error"
	File  string `koanf:"file"`  // log file path; empty logs to stderr
}

// NotificationsConfig controls desktop now-playing notifications.
type NotificationsConfig struct {
	Enabled      bool  `koanf:"enabled"`        // send a notification on track change
	ShowAlbumArt bool  `koanf:"show_album_art"` // attach album art when found
	TimeoutMs    int32 `koanf:"timeout_ms"`     // notification expiry, -1 = server default
}

// Load reads the configuration. With an explicit path only that file is
// read and it must exist. Otherwise the default locations are tried in
// order of priority (last wins) and missing files are skipped.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err == nil {
				if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{
		Volume:         0.5,
		Mode:           "sequential",
		PollIntervalMs: defaultPollIntervalMs,
		RestoreSession: true,
		Log:            LogConfig{Level: "info"},
		Notifications: NotificationsConfig{
			Enabled:      true,
			ShowAlbumArt: true,
			TimeoutMs:    5000,
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Clamp volume to the engine's range
	if cfg.Volume < 0 {
		cfg.Volume = 0
	}
	if cfg.Volume > 1 {
		cfg.Volume = 1
	}

	// Expand ~ in paths
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

// PollInterval returns the completion poll cadence as a duration,
// falling back to the default for non-positive values.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalMs <= 0 {
		return defaultPollIntervalMs * time.Millisecond
	}
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/refrain/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "refrain", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
