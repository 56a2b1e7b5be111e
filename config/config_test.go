package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Workspace.TTL != 2*time.Hour {
		t.Errorf("expected ttl 2h, got %v", cfg.Workspace.TTL)
	}
	if cfg.Rate.Burst != 40 {
		t.Errorf("expected burst 40, got %d", cfg.Rate.Burst)
	}
}

func TestLoadFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt-editor.yaml")
	content := `
server:
  addr: ":9090"
workspace:
  ttl: 30m
logging:
  level: debug
  format: text
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Workspace.TTL != 30*time.Minute {
		t.Errorf("expected ttl 30m, got %v", cfg.Workspace.TTL)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
	// Unchanged fields keep defaults.
	if cfg.Export.Dir != "exports" {
		t.Errorf("expected default export dir, got %s", cfg.Export.Dir)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt-editor.yaml")
	if err := os.WriteFile(path, []byte("export:\n  dir: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROMPT_EDITOR_EXPORT_DIR", "from-env")
	t.Setenv("PROMPT_EDITOR_RATE_BURST", "7")

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Dir != "from-env" {
		t.Errorf("expected env override, got %s", cfg.Export.Dir)
	}
	if cfg.Rate.Burst != 7 {
		t.Errorf("expected burst 7, got %d", cfg.Rate.Burst)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"empty export dir", func(c *Config) { c.Export.Dir = "" }, "export.dir"},
		{"negative ttl", func(c *Config) { c.Workspace.TTL = -time.Second }, "workspace.ttl"},
		{"zero rate", func(c *Config) { c.Rate.RequestsPerSecond = 0 }, "rate.requests_per_second"},
		{"zero burst", func(c *Config) { c.Rate.Burst = 0 }, "rate.burst"},
		{"zero limiter cleanup", func(c *Config) { c.Rate.CleanupInterval = 0 }, "rate.cleanup_interval"},
		{"zero limiter idle", func(c *Config) { c.Rate.MaxIdleTime = 0 }, "rate.max_idle_time"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			err := validate(&cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
	cfg := Defaults()
	if err := validate(&cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadRejectsZeroLimiterCleanup(t *testing.T) {
	t.Setenv("PROMPT_EDITOR_RATE_CLEANUP_INTERVAL", "0s")
	if _, err := Load(viper.New()); err == nil || !strings.Contains(err.Error(), "rate.cleanup_interval") {
		t.Fatalf("expected cleanup interval to be rejected, got %v", err)
	}
}
