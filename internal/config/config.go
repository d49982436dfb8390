// Package config provides YAML-based configuration loading for CPMS.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level CPMS configuration, loaded from cpms.yaml.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig holds HTTP API and session-token settings.
type ServerConfig struct {
	Port          int    `yaml:"port"`
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// DatabaseConfig selects the storage driver and its connection string.
// Driver is one of sqlite, mysql, postgres. For sqlite, DSN is a file path
// (or :memory:); for the server drivers it is a full DSN.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// SchedulerConfig controls the drive lifecycle scheduler.
type SchedulerConfig struct {
	Enabled             bool   `yaml:"enabled"`
	Cron                string `yaml:"cron"`
	CompletionGraceDays int    `yaml:"completion_grace_days"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values. CPMS_JWT_SECRET in the
// environment wins over the file value so secrets can stay out of YAML.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if sec := os.Getenv("CPMS_JWT_SECRET"); sec != "" {
		c.Server.JWTSecret = sec
	}
	if c.Server.TokenTTLHours == 0 {
		c.Server.TokenTTLHours = 168 // 7 days, matching the classic session length
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "cpms.db"
	}
	if c.Scheduler.Cron == "" {
		c.Scheduler.Cron = "5 0 * * *"
	}
	if c.Scheduler.CompletionGraceDays == 0 {
		c.Scheduler.CompletionGraceDays = 14
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Server.JWTSecret == "" {
		errs = append(errs, "server.jwt_secret is required (or set CPMS_JWT_SECRET)")
	}
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not one of sqlite, mysql, postgres", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, "database.dsn is required")
	}
	if c.Scheduler.CompletionGraceDays < 0 {
		errs = append(errs, "scheduler.completion_grace_days must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
