package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/chitx/cashflow"
	"github.com/rustyeddy/chitx/history"
	"github.com/rustyeddy/chitx/internal/logging"
	"github.com/rustyeddy/chitx/performance"
	"github.com/rustyeddy/chitx/xirr"
)

// Config represents the complete calculator configuration
type Config struct {
	Solver     xirr.Params             `json:"solver" yaml:"solver"`
	History    HistoryConfig           `json:"history" yaml:"history"`
	Log        LogConfig               `json:"log" yaml:"log"`
	Calculator CalculatorConfig        `json:"calculator" yaml:"calculator"`
	Levels     []performance.Level     `json:"levels,omitempty" yaml:"levels,omitempty"`
	Benchmarks []performance.Benchmark `json:"benchmarks,omitempty" yaml:"benchmarks,omitempty"`
}

// HistoryConfig contains history store parameters
type HistoryConfig struct {
	DBPath     string `json:"db_path" yaml:"db_path"`
	MaxEntries int    `json:"max_entries" yaml:"max_entries"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level   string `json:"level" yaml:"level"` // debug|info|warn|error
	NoColor bool   `json:"no_color" yaml:"no_color"`
}

// CalculatorConfig contains calculation defaults
type CalculatorConfig struct {
	Frequency    cashflow.Frequency `json:"frequency" yaml:"frequency"`
	SweepWorkers int                `json:"sweep_workers" yaml:"sweep_workers"`
}

// Environment variables that override file values.
const (
	EnvDBPath     = "CHITX_DB_PATH"
	EnvLogLevel   = "CHITX_LOG_LEVEL"
	EnvMaxHistory = "CHITX_MAX_HISTORY"
)

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// on top of Default, then applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load returns the file config when path is set, otherwise Default with
// environment overrides. A .env file in the working directory is read first
// if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		return LoadFromFile(path)
	}

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with CHITX_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.History.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvMaxHistory); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxHistory, err)
		}
		c.History.MaxEntries = n
	}
	return nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if c.History.DBPath == "" {
		return fmt.Errorf("history.db_path is required")
	}
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := cashflow.ParseFrequency(string(c.Calculator.Frequency)); err != nil {
		return fmt.Errorf("calculator.frequency: %w", err)
	}
	if c.Calculator.SweepWorkers <= 0 {
		return fmt.Errorf("calculator.sweep_workers must be positive")
	}
	for i := 1; i < len(c.Levels); i++ {
		if c.Levels[i].Threshold > c.Levels[i-1].Threshold {
			return fmt.Errorf("levels must be ordered by descending threshold")
		}
	}
	for _, b := range c.Benchmarks {
		if b.Name == "" {
			return fmt.Errorf("benchmark name is required")
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Solver: xirr.DefaultParams(),
		History: HistoryConfig{
			DBPath:     "./chitx.sqlite",
			MaxEntries: history.DefaultMaxEntries,
		},
		Log: LogConfig{
			Level: "info",
		},
		Calculator: CalculatorConfig{
			Frequency:    cashflow.Monthly,
			SweepWorkers: 4,
		},
		Levels:     performance.DefaultLevels(),
		Benchmarks: performance.DefaultBenchmarks(),
	}
}
