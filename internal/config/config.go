package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config drives the command-line tools.
type Config struct {
	Capacity        int    `yaml:"capacity"`
	Shards          int    `yaml:"shards"`
	LogLevel        string `yaml:"log_level"`
	Keys            int    `yaml:"keys"`
	Goroutines      int    `yaml:"goroutines"`
	OpsPerGoroutine int    `yaml:"ops_per_goroutine"`
}

func Default() Config {
	return Config{
		Capacity:        100000,
		Shards:          16,
		LogLevel:        "info",
		Keys:            50000,
		Goroutines:      100,
		OpsPerGoroutine: 100000,
	}
}

/*
Load builds a Config in this order, later sources winning:
  - Default()
  - the YAML file at path (skipped when path is empty)
  - a .env file in the working directory, if present
  - LRU_CAPACITY, LRU_SHARDS, LRU_LOG_LEVEL, LRU_KEYS, LRU_GOROUTINES, LRU_OPS
*/
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"LRU_CAPACITY", &cfg.Capacity},
		{"LRU_SHARDS", &cfg.Shards},
		{"LRU_KEYS", &cfg.Keys},
		{"LRU_GOROUTINES", &cfg.Goroutines},
		{"LRU_OPS", &cfg.OpsPerGoroutine},
	}
	for _, v := range ints {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
		*v.dst = n
	}

	if lvl := os.Getenv("LRU_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	return nil
}

func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", c.Capacity)
	}
	if c.Shards <= 0 {
		return fmt.Errorf("shards must be positive, got %d", c.Shards)
	}
	if c.Keys < 0 || c.Goroutines < 0 || c.OpsPerGoroutine < 0 {
		return errors.New("keys, goroutines and ops_per_goroutine must not be negative")
	}
	return nil
}
