package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "trendr-config-*")
	if err != nil {
		panic(err)
	}

	_ = os.Setenv("XDG_CONFIG_HOME", dir)
	code := m.Run()
	_ = os.RemoveAll(dir)

	os.Exit(code)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	require.Equal(t, 7*24*time.Hour, cfg.Trending.Window)
	require.Equal(t, 30, cfg.Trending.PageSize)
	require.Zero(t, cfg.Trending.CacheTTL)
	require.Equal(t, DriverBolt, cfg.Store.Driver)
	require.Equal(t, "trendr.bolt", filepath.Base(cfg.Store.Path))
	require.Equal(t, 5<<20, cfg.Store.MaxValueBytes)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
trending:
  window: 72h
  page_size: 50
  cache_ttl: 5m
store:
  driver: sqlite
log:
  level: debug
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 72*time.Hour, cfg.Trending.Window)
	require.Equal(t, 50, cfg.Trending.PageSize)
	require.Equal(t, 5*time.Minute, cfg.Trending.CacheTTL)
	require.Equal(t, DriverSQLite, cfg.Store.Driver)
	require.Equal(t, "trendr.db", filepath.Base(cfg.Store.Path))
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "page size too large", body: "trending:\n  page_size: 101\n"},
		{name: "negative page size", body: "trending:\n  page_size: -1\n"},
		{name: "zero window", body: "trending:\n  window: 0s\n"},
		{name: "unknown driver", body: "store:\n  driver: redis\n"},
		{name: "postgres without dsn", body: "store:\n  driver: postgres\n"},
		{name: "unknown log level", body: "log:\n  level: verbose\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "trending:\n  window: soon\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "trending.window")
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "trending: [unterminated\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse config")
}

func TestResolveToken_Priority(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-github")
	t.Setenv("GH_TOKEN", "env-gh")

	cfg := &Config{GitHub: GitHubConfig{Token: "from-file"}}

	require.Equal(t, "from-flag", cfg.ResolveToken("from-flag"))
	require.Equal(t, "from-file", cfg.ResolveToken(""))

	cfg.GitHub.Token = ""
	require.Equal(t, "env-github", cfg.ResolveToken(""))

	t.Setenv("GITHUB_TOKEN", "")
	require.Equal(t, "env-gh", cfg.ResolveToken(""))

	t.Setenv("GH_TOKEN", "  ")
	require.Empty(t, cfg.ResolveToken(""))
}

func TestYAML_RedactsSecrets(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	cfg.GitHub.Token = "ghp_secret"
	cfg.Store.DSN = "host=db password=hunter2"

	out, err := cfg.YAML()
	require.NoError(t, err)
	require.NotContains(t, string(out), "ghp_secret")
	require.NotContains(t, string(out), "hunter2")
	require.Contains(t, string(out), "window: 168h")

	require.Equal(t, "ghp_secret", cfg.GitHub.Token, "YAML must not modify the receiver")
}
