package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds for the indicator dataset.
const (
	SourceSynthetic = "synthetic"
	SourceFile      = "file"
	SourcePostgres  = "postgres"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Source    SourceConfig    `yaml:"source"`
	Database  DatabaseConfig  `yaml:"database"`
	Hermes    HermesConfig    `yaml:"hermes"`
	Generator GeneratorConfig `yaml:"generator"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type SourceConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`

	// RefreshIntervalMs re-reads the source periodically. Zero disables refresh.
	RefreshIntervalMs int `yaml:"refresh_interval_ms"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type GeneratorConfig struct {
	Seed      uint64   `yaml:"seed"`
	StartYear int      `yaml:"start_year"`
	EndYear   int      `yaml:"end_year"`
	Regions   []string `yaml:"regions"`
}

type ScoringConfig struct {
	Weights      ScoringWeights `yaml:"weights"`
	WatchWeights bool           `yaml:"watch_weights"`
}

type ScoringWeights struct {
	Profit      float64 `yaml:"profit"`
	Reliability float64 `yaml:"reliability"`
	EROI        float64 `yaml:"eroi"`
	Neutrality  float64 `yaml:"neutrality"`
	Env         float64 `yaml:"env"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SlogLevel maps the configured level name to a slog.Level, defaulting to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Source.RefreshIntervalMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Source: SourceConfig{
			Kind: SourceSynthetic,
		},
		Generator: GeneratorConfig{
			Seed:      42,
			StartYear: 2020,
			EndYear:   2025,
			Regions:   []string{"SouthSea", "NorthBay"},
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				Profit:      0.30,
				Reliability: 0.20,
				EROI:        0.15,
				Neutrality:  0.15,
				Env:         0.20,
			},
			WatchWeights: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceSynthetic:
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("source kind %q requires source.path", c.Source.Kind)
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("source kind %q requires database.url", c.Source.Kind)
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	if c.Source.RefreshIntervalMs < 0 {
		return fmt.Errorf("source.refresh_interval_ms must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CCS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("CCS_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("CCS_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("CCS_SOURCE_KIND"); v != "" {
		cfg.Source.Kind = v
	}
	if v := os.Getenv("CCS_SOURCE_PATH"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("CCS_REFRESH_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Source.RefreshIntervalMs = n
		}
	}
	if v := os.Getenv("CCS_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("CCS_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("CCS_GENERATOR_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Generator.Seed = n
		}
	}
	if v := os.Getenv("CCS_WATCH_WEIGHTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scoring.WatchWeights = b
		}
	}
	if v := os.Getenv("CCS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CCS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
