// Package config loads server settings from an optional YAML file, with a
// few environment overrides on top. Everything has a workable default, so a
// missing file is not an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "werewolves.yaml"

type Config struct {
	// Addr is the web gateway listen address.
	Addr string `yaml:"addr"`
	// Provider is the default decision backend: openai, gemini or mistral.
	Provider string `yaml:"provider"`
	// Players is the default head count for new games.
	Players int `yaml:"players"`
	// MaxRounds caps each discussion phase.
	MaxRounds int `yaml:"max_rounds"`
	// Seed fixes in-game randomness; 0 means time-seeded.
	Seed int64 `yaml:"seed"`
	// CallTimeoutSeconds bounds each provider call.
	CallTimeoutSeconds int `yaml:"call_timeout_seconds"`
}

// CallTimeout is CallTimeoutSeconds as a duration.
func (c Config) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}

func Default() Config {
	return Config{
		Addr:               "0.0.0.0:1235",
		Provider:           "openai",
		Players:            24,
		MaxRounds:          5,
		CallTimeoutSeconds: 60,
	}
}

// Load reads the file at path if it exists, then applies env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if cfg.Players < 4 {
		return cfg, fmt.Errorf("players must be at least 4, got %d", cfg.Players)
	}
	if cfg.MaxRounds < 1 {
		return cfg, fmt.Errorf("max_rounds must be at least 1, got %d", cfg.MaxRounds)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WOLVES_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("WOLVES_PLAYERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Players = n
		}
	}
	if v := os.Getenv("WOLVES_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
}
