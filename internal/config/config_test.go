package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	return Load(flag.NewFlagSet("test", flag.ContinueOnError), args)
}

// chdirTemp runs the test in an empty directory so ./todolist.toml is absent.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TODOLIST_CONFIG", "")

	cfg, err := load(t)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Store != StoreSQLite || cfg.DBPath != "./data/todos.db" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.MetricsPath != "/metrics" || cfg.CORSOrigin != "*" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadPriority(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TODOLIST_CONFIG", "")

	file := `
addr = ":9000"
store = "memory"
log_level = "debug"
log_format = "json"
`
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(file), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := load(t, "-addr", ":7000")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("flag should win: addr = %q", cfg.Addr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("env should beat file: log_level = %q", cfg.LogLevel)
	}
	if cfg.Store != StoreMemory || cfg.LogFormat != "json" {
		t.Errorf("file values missing: %+v", cfg)
	}
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	chdirTemp(t)

	_, err := load(t, "-config", "missing.toml")
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(`colour = "blue"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TODOLIST_CONFIG", path)

	_, err := load(t)
	if err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Errorf("expected unknown keys error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"unknown store", func(c *Config) { c.Store = "redis" }, "unknown store"},
		{"postgres needs dsn", func(c *Config) { c.Store = StorePostgres }, "postgres_dsn"},
		{"sqlite needs path", func(c *Config) { c.DBPath = "" }, "db_path"},
		{"store is case-insensitive", func(c *Config) { c.Store = "MEMORY" }, ""},
		{"empty addr", func(c *Config) { c.Addr = "" }, "addr"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log format"},
		{"relative metrics path", func(c *Config) { c.MetricsPath = "metrics" }, "metrics_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
