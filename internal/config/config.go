// Package config loads radix settings from defaults, a YAML file, RADIX_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/govalues/radix"
	"github.com/govalues/radix/internal/protocol"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RADIX"

var errInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of the radix server and commands.
type Config struct {
	Listen          string        `mapstructure:"listen"`
	HTTPListen      string        `mapstructure:"http_listen"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	HTTPMaxInFlight int           `mapstructure:"http_max_in_flight"`
	MaxDigits       int           `mapstructure:"max_digits"`
	MaxRequestBytes int           `mapstructure:"max_request_bytes"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ProxyProtocol   bool          `mapstructure:"proxy_protocol"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	CacheCleanup    time.Duration `mapstructure:"cache_cleanup"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	LogFile         string        `mapstructure:"log_file"`
}

// Default values.
const (
	DefaultListen       = ":65432"
	DefaultHTTPListen   = ""
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultHTTPInFlight = 8
	DefaultReadTimeout  = 10 * time.Second
	DefaultCacheTTL     = 10 * time.Minute
	DefaultCacheCleanup = 20 * time.Minute
	DefaultRateLimit    = 0.0
	DefaultRateBurst    = 8
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// NewViper returns a viper instance with defaults and environment lookup set.
// Callers may bind flags to its keys before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("http_listen", DefaultHTTPListen)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("http_max_in_flight", DefaultHTTPInFlight)
	v.SetDefault("max_digits", radix.DefaultMaxDigits)
	v.SetDefault("max_request_bytes", protocol.MaxRequestBytes)
	v.SetDefault("read_timeout", DefaultReadTimeout)
	v.SetDefault("proxy_protocol", false)
	v.SetDefault("cache_ttl", DefaultCacheTTL)
	v.SetDefault("cache_cleanup", DefaultCacheCleanup)
	v.SetDefault("rate_limit", DefaultRateLimit)
	v.SetDefault("rate_burst", DefaultRateBurst)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("log_file", "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ranges of numeric settings.
// A non-positive MaxDigits selects radix.DefaultMaxDigits.
func (c Config) Validate() error {
	switch {
	case c.Listen == "":
		return fmt.Errorf("listen address is empty: %w", errInvalidConfig)
	case c.MaxRequestBytes <= 0 || c.MaxRequestBytes > protocol.MaxRequestBytes:
		return fmt.Errorf("max_request_bytes %v is not in [1, %v]: %w", c.MaxRequestBytes, protocol.MaxRequestBytes, errInvalidConfig)
	case c.RateLimit < 0:
		return fmt.Errorf("rate_limit %v is negative: %w", c.RateLimit, errInvalidConfig)
	case c.RateLimit > 0 && c.RateBurst <= 0:
		return fmt.Errorf("rate_burst %v must be positive when rate_limit is set: %w", c.RateBurst, errInvalidConfig)
	case c.HTTPMaxInFlight < 0:
		return fmt.Errorf("http_max_in_flight %v is negative: %w", c.HTTPMaxInFlight, errInvalidConfig)
	case c.ReadTimeout < 0 || c.HTTPTimeout < 0 || c.CacheTTL < 0 || c.CacheCleanup < 0:
		return fmt.Errorf("durations must not be negative: %w", errInvalidConfig)
	}
	return nil
}
