package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Matching MatchingConfig `yaml:"matching"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type MatchingConfig struct {
	MinMatchRate  float64 `yaml:"min_match_rate"`
	MaxCohortSize int     `yaml:"max_cohort_size"`
	TopThemeCount int     `yaml:"top_theme_count"`
	IQFloor       float64 `yaml:"iq_floor"`
	IQCeiling     float64 `yaml:"iq_ceiling"`
	PAPIScaleMin  float64 `yaml:"papi_scale_min"`
	PAPIScaleMax  float64 `yaml:"papi_scale_max"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Matching: MatchingConfig{
			MinMatchRate:  70,
			MaxCohortSize: 3,
			TopThemeCount: 5,
			IQFloor:       80,
			IQCeiling:     140,
			PAPIScaleMin:  1,
			PAPIScaleMax:  9,
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
	if c.Matching.MinMatchRate < 0 || c.Matching.MinMatchRate > 100 {
		return fmt.Errorf("min_match_rate %.2f outside [0,100]", c.Matching.MinMatchRate)
	}
	if c.Matching.MaxCohortSize < 1 {
		return fmt.Errorf("max_cohort_size must be at least 1, got %d", c.Matching.MaxCohortSize)
	}
	if c.Matching.TopThemeCount < 1 {
		return fmt.Errorf("top_theme_count must be at least 1, got %d", c.Matching.TopThemeCount)
	}
	if c.Matching.IQFloor > c.Matching.IQCeiling {
		return fmt.Errorf("iq_floor %.0f above iq_ceiling %.0f", c.Matching.IQFloor, c.Matching.IQCeiling)
	}
	if c.Matching.PAPIScaleMin > c.Matching.PAPIScaleMax {
		return fmt.Errorf("papi_scale_min %.0f above papi_scale_max %.0f", c.Matching.PAPIScaleMin, c.Matching.PAPIScaleMax)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TALENTMATCH_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("TALENTMATCH_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("TALENTMATCH_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("TALENTMATCH_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("TALENTMATCH_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("TALENTMATCH_MIN_MATCH_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matching.MinMatchRate = f
		}
	}
	if v := os.Getenv("TALENTMATCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
