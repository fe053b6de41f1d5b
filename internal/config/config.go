// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/amaumene/gostremioagg/internal/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces every environment override, e.g. GOSTREMIOAGG_LOG_LEVEL.
	EnvPrefix = "GOSTREMIOAGG"
	// ConfigFileEnv points at an optional JSON, TOML or YAML file.
	ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"
)

// EnvKeyReplacer maps nested keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Config holds the application configuration.
// Precedence is environment, then config file, then defaults.
type Config struct {
	Port      string
	AddonID   string
	Log       LogConfig
	Torrentio TorrentioConfig
}

// LogConfig controls log level and optional rotated file output.
type LogConfig struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// TorrentioConfig tunes the Torrentio provider.
type TorrentioConfig struct {
	URL            string
	Timeout        time.Duration
	MaxConcurrency int
	RateLimit      int
	RateBurst      int
}

var defaults = map[string]any{
	"port":                      constants.DefaultPort,
	"addon.id":                  constants.AddonID,
	"log.level":                 constants.DefaultLogLevel,
	"log.file":                  "",
	"log.max_size":              constants.DefaultLogMaxSize,
	"log.max_backups":           constants.DefaultLogMaxBackups,
	"log.max_age":               constants.DefaultLogMaxAge,
	"log.compress":              false,
	"torrentio.url":             constants.TorrentioURL,
	"torrentio.timeout":         constants.DefaultTorrentioTimeout,
	"torrentio.max_concurrency": constants.DefaultMaxConcurrency,
	"torrentio.rate_limit":      constants.TorrentioRateLimit,
	"torrentio.rate_burst":      constants.TorrentioRateBurst,
}

// Load reads the configuration using the file named by GOSTREMIOAGG_CONFIG_FILE, if any.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(ConfigFileEnv))
}

// LoadFile reads configuration from path (optional) and the environment.
// Returns an error if the file cannot be read or the result is invalid.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
	// plain PORT and LOG_LEVEL are honoured for container platforms
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigurationError(fmt.Sprintf("failed to read config file %s", path), err)
		}
	}

	cfg := &Config{
		Port:    v.GetString("port"),
		AddonID: v.GetString("addon.id"),
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			File:       v.GetString("log.file"),
			MaxSize:    v.GetInt("log.max_size"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAge:     v.GetInt("log.max_age"),
			Compress:   v.GetBool("log.compress"),
		},
		Torrentio: TorrentioConfig{
			URL:            v.GetString("torrentio.url"),
			Timeout:        v.GetDuration("torrentio.timeout"),
			MaxConcurrency: v.GetInt("torrentio.max_concurrency"),
			RateLimit:      v.GetInt("torrentio.rate_limit"),
			RateBurst:      v.GetInt("torrentio.rate_burst"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return errors.NewConfigurationError(fmt.Sprintf("invalid port %q", c.Port), err)
	}
	if c.AddonID == "" {
		return errors.NewConfigurationError("addon id must not be empty", nil)
	}

	u, err := url.Parse(c.Torrentio.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigurationError(fmt.Sprintf("invalid torrentio url %q", c.Torrentio.URL), err)
	}
	if c.Torrentio.Timeout <= 0 {
		return errors.NewConfigurationError("torrentio timeout must be positive", nil)
	}
	if c.Torrentio.MaxConcurrency <= 0 {
		return errors.NewConfigurationError("torrentio max_concurrency must be positive", nil)
	}
	if c.Torrentio.RateLimit <= 0 || c.Torrentio.RateBurst <= 0 {
		return errors.NewConfigurationError("torrentio rate_limit and rate_burst must be positive", nil)
	}
	return nil
}
