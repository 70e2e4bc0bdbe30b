// Package config loads server configuration.
//
// Values are applied in priority order, later sources overriding earlier ones:
//  1. Defaults
//  2. TOML config file (-config flag, TODOLIST_CONFIG, or ./todolist.toml if present)
//  3. Environment variables
//  4. CLI flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Store drivers.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// DefaultConfigFile is looked up in the working directory when no file is named.
const DefaultConfigFile = "todolist.toml"

// Config holds all server settings.
type Config struct {
	Addr        string `toml:"addr"`
	Store       string `toml:"store"`
	DBPath      string `toml:"db_path"`
	PostgresDSN string `toml:"postgres_dsn"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	CORSOrigin  string `toml:"cors_origin"`
	MetricsPath string `toml:"metrics_path"`
}

func setDefaults(cfg *Config) {
	cfg.Addr = ":8080"
	cfg.Store = StoreSQLite
	cfg.DBPath = "./data/todos.db"
	cfg.LogLevel = "info"
	cfg.LogFormat = "text"
	cfg.CORSOrigin = "*"
	cfg.MetricsPath = "/metrics"
}

// Load builds a Config from defaults, file, environment and the flags in args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// Flags are parsed up front so -config can name the file, but applied last.
	var flagCfg Config
	var configFile string
	fs.StringVar(&configFile, "config", "", "path to TOML config file")
	fs.StringVar(&flagCfg.Addr, "addr", "", "listen address")
	fs.StringVar(&flagCfg.Store, "store", "", "store driver: sqlite, postgres or memory")
	fs.StringVar(&flagCfg.DBPath, "db", "", "SQLite database path")
	fs.StringVar(&flagCfg.PostgresDSN, "postgres-dsn", "", "PostgreSQL connection string")
	fs.StringVar(&flagCfg.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&flagCfg.LogFormat, "log-format", "", "log format: text or json")
	fs.StringVar(&flagCfg.CORSOrigin, "cors-origin", "", "Access-Control-Allow-Origin value")
	fs.StringVar(&flagCfg.MetricsPath, "metrics-path", "", "path serving Prometheus metrics")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 2. Config file
	path, required := configFile, configFile != ""
	if path == "" {
		if v := os.Getenv("TODOLIST_CONFIG"); v != "" {
			path, required = v, true
		} else {
			path = DefaultConfigFile
		}
	}
	if err := loadConfigFile(cfg, path, required); err != nil {
		return nil, err
	}

	// 3. Environment
	loadFromEnv(cfg)

	// 4. Flags
	merge(cfg, &flagCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("loading config file %s: unknown keys %v", path, undecoded)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	env := map[string]*string{
		"TODOLIST_ADDR":         &cfg.Addr,
		"TODOLIST_STORE":        &cfg.Store,
		"TODOLIST_DB_PATH":      &cfg.DBPath,
		"TODOLIST_POSTGRES_DSN": &cfg.PostgresDSN,
		"LOG_LEVEL":             &cfg.LogLevel,
		"TODOLIST_LOG_FORMAT":   &cfg.LogFormat,
		"TODOLIST_CORS_ORIGIN":  &cfg.CORSOrigin,
		"TODOLIST_METRICS_PATH": &cfg.MetricsPath,
	}
	for key, dst := range env {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

// merge copies every non-empty field of src over dst.
func merge(dst, src *Config) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Addr, src.Addr)
	set(&dst.Store, src.Store)
	set(&dst.DBPath, src.DBPath)
	set(&dst.PostgresDSN, src.PostgresDSN)
	set(&dst.LogLevel, src.LogLevel)
	set(&dst.LogFormat, src.LogFormat)
	set(&dst.CORSOrigin, src.CORSOrigin)
	set(&dst.MetricsPath, src.MetricsPath)
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(c.Store)
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return errors.New("db_path is required for the sqlite store")
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres_dsn is required for the postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want sqlite, postgres or memory)", c.Store)
	}
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("metrics_path must start with /: %q", c.MetricsPath)
	}
	return nil
}
