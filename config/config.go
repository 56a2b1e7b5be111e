// Package config loads the server configuration.
// Precedence: defaults < config file < PROMPT_EDITOR_* environment < flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. PROMPT_EDITOR_SERVER_ADDR.
const EnvPrefix = "PROMPT_EDITOR"

// Config holds all runtime configuration.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Workspace Workspace `mapstructure:"workspace"`
	Export    Export    `mapstructure:"export"`
	Logging   Logging   `mapstructure:"logging"`
	Rate      Rate      `mapstructure:"rate"`
}

// Server holds HTTP server configuration.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Workspace holds live editor configuration.
type Workspace struct {
	TTL             time.Duration `mapstructure:"ttl"`              // idle time before a workspace is closed; 0 keeps them forever
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"` // how often expired workspaces are swept
	SeedFile        string        `mapstructure:"seed_file"`        // keyword file loaded into new workspaces
}

// Export holds the export directory.
type Export struct {
	Dir string `mapstructure:"dir"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"` // "json" or "text"
	Service string `mapstructure:"service"`
}

// Rate holds per-IP API rate limiting configuration.
type Rate struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	MaxIdleTime       time.Duration `mapstructure:"max_idle_time"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Workspace: Workspace{
			TTL:             2 * time.Hour,
			CleanupInterval: time.Minute,
		},
		Export: Export{
			Dir: "exports",
		},
		Logging: Logging{
			Level:   "info",
			Format:  "json",
			Service: "prompt-editor",
		},
		Rate: Rate{
			RequestsPerSecond: 20,
			Burst:             40,
			CleanupInterval:   5 * time.Minute,
			MaxIdleTime:       10 * time.Minute,
		},
	}
}

// SetDefaults registers every key with its default so that environment
// variables and Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("workspace.ttl", d.Workspace.TTL)
	v.SetDefault("workspace.cleanup_interval", d.Workspace.CleanupInterval)
	v.SetDefault("workspace.seed_file", d.Workspace.SeedFile)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.service", d.Logging.Service)
	v.SetDefault("rate.requests_per_second", d.Rate.RequestsPerSecond)
	v.SetDefault("rate.burst", d.Rate.Burst)
	v.SetDefault("rate.cleanup_interval", d.Rate.CleanupInterval)
	v.SetDefault("rate.max_idle_time", d.Rate.MaxIdleTime)
}

// BindEnv makes v read PROMPT_EDITOR_* variables, with "." in keys
// replaced by "_".
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load builds a Config from v, which may already hold a config file and
// bound flags.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	BindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if cfg.Export.Dir == "" {
		return errors.New("export.dir is required")
	}
	if cfg.Workspace.TTL < 0 {
		return errors.New("workspace.ttl must be >= 0")
	}
	if cfg.Rate.RequestsPerSecond <= 0 {
		return errors.New("rate.requests_per_second must be > 0")
	}
	if cfg.Rate.Burst < 1 {
		return errors.New("rate.burst must be >= 1")
	}
	if cfg.Rate.CleanupInterval <= 0 {
		return errors.New("rate.cleanup_interval must be > 0")
	}
	if cfg.Rate.MaxIdleTime <= 0 {
		return errors.New("rate.max_idle_time must be > 0")
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", cfg.Logging.Format)
	}
	return nil
}
