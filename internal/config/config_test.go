package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(logLevelEnv, "")
	t.Setenv(httpAddrEnv, "")
	t.Setenv(fetchTimeoutEnv, "")
	t.Setenv(rateLimitEnv, "")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "amazon", cfg.Resolver.Site)
	require.Equal(t, []string{"in", "com"}, cfg.Resolver.TLDs)
	require.Equal(t, 10*time.Second, cfg.Fetcher.Timeout)
	require.Len(t, cfg.Fetcher.UserAgents, 4)
	require.Len(t, cfg.Selectors["starRating"], 2)
	require.Equal(t, ":8080", cfg.Server.Addr)
}

func TestParseMergesOverDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
logging:
  level: debug
fetcher:
  timeout: 3s
  rotation: round_robin
  userAgents:
    - test-agent/1.0
selectors:
  body:
    - '.review-text'
    - '[data-hook="review-body"]'
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
	require.Equal(t, 3*time.Second, cfg.Fetcher.Timeout)
	require.Equal(t, RotationRoundRobin, cfg.Fetcher.Rotation)
	require.Equal(t, []string{"test-agent/1.0"}, cfg.Fetcher.UserAgents)
	require.Equal(t, "en-US,en;q=0.9", cfg.Fetcher.AcceptLanguage)

	require.Equal(t, []string{".review-text", `[data-hook="review-body"]`}, cfg.Selectors["body"])
	require.Equal(t, []string{`div[data-hook="review"]`}, cfg.Selectors["review"])
}

func TestLoadFromAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o600))

	t.Setenv(logLevelEnv, "warn")
	t.Setenv(httpAddrEnv, "")
	t.Setenv(fetchTimeoutEnv, "15s")
	t.Setenv(rateLimitEnv, "0.5")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	require.Equal(t, ":9000", cfg.Server.Addr)
	require.Equal(t, "warn", cfg.Logging.Level)
	require.Equal(t, 15*time.Second, cfg.Fetcher.Timeout)
	require.InDelta(t, 0.5, cfg.Fetcher.RequestsPerSecond, 1e-9)
}

func TestLoadFromMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*Config){
		"no review selector": func(c *Config) { delete(c.Selectors, "review") },
		"zero timeout":       func(c *Config) { c.Fetcher.Timeout = 0 },
		"unknown rotation":   func(c *Config) { c.Fetcher.Rotation = "sticky" },
		"no user agents":     func(c *Config) { c.Fetcher.UserAgents = nil },
		"no tlds":            func(c *Config) { c.Resolver.TLDs = nil },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
