package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inovacc/trendr/internal/application"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	DriverBolt     = "bolt"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// MaxPageSize is the largest page the search API serves.
	MaxPageSize = 100
)

type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Trending TrendingConfig `yaml:"trending"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
}

type GitHubConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

type TrendingConfig struct {
	Window      time.Duration `yaml:"-"`
	RawWindow   string        `yaml:"window"`
	PageSize    int           `yaml:"page_size"`
	CacheTTL    time.Duration `yaml:"-"`
	RawCacheTTL string        `yaml:"cache_ttl"`
}

type StoreConfig struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	DSN           string `yaml:"dsn"`
	MaxValueBytes int    `yaml:"max_value_bytes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultPath is <application dir>/config.yaml.
func DefaultPath() (string, error) {
	return application.FilePath("config.yaml")
}

// Default returns a config with every default applied.
func Default() (*Config, error) {
	var cfg Config
	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads the YAML file at path. An empty path means DefaultPath. A missing
// file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() error {
	if c.Trending.RawWindow == "" {
		c.Trending.RawWindow = "168h"
	}
	d, err := time.ParseDuration(c.Trending.RawWindow)
	if err != nil {
		return fmt.Errorf("parse trending.window %q: %w", c.Trending.RawWindow, err)
	}
	c.Trending.Window = d

	if c.Trending.PageSize == 0 {
		c.Trending.PageSize = 30
	}

	if c.Trending.RawCacheTTL == "" {
		c.Trending.RawCacheTTL = "0s"
	}
	ttl, err := time.ParseDuration(c.Trending.RawCacheTTL)
	if err != nil {
		return fmt.Errorf("parse trending.cache_ttl %q: %w", c.Trending.RawCacheTTL, err)
	}
	c.Trending.CacheTTL = ttl

	if c.Store.Driver == "" {
		c.Store.Driver = DriverBolt
	}
	if c.Store.Path == "" && c.Store.Driver != DriverPostgres {
		name := "trendr.bolt"
		if c.Store.Driver == DriverSQLite {
			name = "trendr.db"
		}

		p, err := application.FilePath(name)
		if err != nil {
			return err
		}
		c.Store.Path = p
	}
	if c.Store.MaxValueBytes == 0 {
		c.Store.MaxValueBytes = 5 << 20
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		p, err := application.FilePath("logs/trendr.log")
		if err != nil {
			return err
		}
		c.Log.File = p
	}

	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}

	return nil
}

func (c *Config) validate() error {
	if c.Trending.Window <= 0 {
		return fmt.Errorf("%w: trending.window must be positive, got %s", ErrInvalid, c.Trending.RawWindow)
	}
	if c.Trending.PageSize < 1 || c.Trending.PageSize > MaxPageSize {
		return fmt.Errorf("%w: trending.page_size must be between 1 and %d, got %d", ErrInvalid, MaxPageSize, c.Trending.PageSize)
	}
	if c.Trending.CacheTTL < 0 {
		return fmt.Errorf("%w: trending.cache_ttl must not be negative", ErrInvalid)
	}

	switch c.Store.Driver {
	case DriverBolt, DriverSQLite:
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn required for driver %q", ErrInvalid, DriverPostgres)
		}
	default:
		return fmt.Errorf("%w: unknown store.driver %q", ErrInvalid, c.Store.Driver)
	}
	if c.Store.MaxValueBytes < 0 {
		return fmt.Errorf("%w: store.max_value_bytes must not be negative", ErrInvalid)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}

	return nil
}

// ResolveToken picks the GitHub token in priority order: the explicit flag
// value, the config file, GITHUB_TOKEN, then GH_TOKEN.
func (c *Config) ResolveToken(flagToken string) string {
	for _, t := range []string{flagToken, c.GitHub.Token, os.Getenv("GITHUB_TOKEN"), os.Getenv("GH_TOKEN")} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}

	return ""
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.GitHub.Token != "" {
		out.GitHub.Token = "********"
	}
	if out.Store.DSN != "" {
		out.Store.DSN = "********"
	}

	return out
}

// YAML renders the redacted config.
func (c *Config) YAML() ([]byte, error) {
	r := c.Redacted()
	return yaml.Marshal(&r)
}
