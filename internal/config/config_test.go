package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/govalues/radix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, ":65432", cfg.Listen)
	assert.Equal(t, "", cfg.HTTPListen)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 8, cfg.HTTPMaxInFlight)
	assert.Equal(t, radix.DefaultMaxDigits, cfg.MaxDigits)
	assert.Equal(t, 200_000, cfg.MaxRequestBytes)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.False(t, cfg.ProxyProtocol)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 0.0, cfg.RateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RADIX_LISTEN", "127.0.0.1:7000")
	t.Setenv("RADIX_MAX_DIGITS", "50")
	t.Setenv("RADIX_CACHE_TTL", "30s")
	t.Setenv("RADIX_RATE_LIMIT", "2.5")
	t.Setenv("RADIX_PROXY_PROTOCOL", "true")
	t.Setenv("RADIX_HTTP_TIMEOUT", "5s")
	t.Setenv("RADIX_HTTP_MAX_IN_FLIGHT", "2")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Listen)
	assert.Equal(t, 50, cfg.MaxDigits)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.True(t, cfg.ProxyProtocol)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.HTTPMaxInFlight)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radix.yaml")
	data := []byte("listen: \":9000\"\nhttp_listen: \":9090\"\nmax_digits: 100\nlog_format: json\nread_timeout: 2s\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, ":9090", cfg.HTTPListen)
	assert.Equal(t, 100, cfg.MaxDigits)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_digits: 100\n"), 0o600))
	t.Setenv("RADIX_MAX_DIGITS", "7")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxDigits)
}

func TestLoad_Error(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	tests := map[string]map[string]string{
		"request bytes": {"RADIX_MAX_REQUEST_BYTES": "0"},
		"request cap":   {"RADIX_MAX_REQUEST_BYTES": "200001"},
		"rate":          {"RADIX_RATE_LIMIT": "-1"},
		"burst":         {"RADIX_RATE_LIMIT": "1", "RADIX_RATE_BURST": "0"},
		"timeout":       {"RADIX_READ_TIMEOUT": "-1s"},
		"http timeout":  {"RADIX_HTTP_TIMEOUT": "-1s"},
		"in flight":     {"RADIX_HTTP_MAX_IN_FLIGHT": "-1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load(NewViper(), "")
			assert.ErrorIs(t, err, errInvalidConfig)
		})
	}
}
