// Package config loads wander's settings from defaults, an optional YAML
// file, WANDER_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/evcraddock/wander/internal/email"
	"github.com/evcraddock/wander/internal/tracing"
)

// EnvPrefix is prepended to every environment variable, e.g. WANDER_PORT.
const EnvPrefix = "WANDER"

const mask = "********"

// Config is the effective configuration.
type Config struct {
	Port        int           `mapstructure:"port" yaml:"port"`
	DevMode     bool          `mapstructure:"dev_mode" yaml:"dev_mode"`
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	DBPath      string        `mapstructure:"db" yaml:"db"`
	APIURL      string        `mapstructure:"api_url" yaml:"api_url"`
	AgencyEmail string        `mapstructure:"agency_email" yaml:"agency_email"`
	SessionTTL  time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`

	SMTP    email.SMTPConfig `mapstructure:"smtp" yaml:"smtp"`
	Redis   RedisConfig      `mapstructure:"redis" yaml:"redis"`
	Tracing tracing.Config   `mapstructure:"tracing" yaml:"tracing"`
}

// RedisConfig selects the redis server for sessions and the catalog cache.
// An empty Addr keeps sessions in sqlite and disables the cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// Enabled reports whether a redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":    "port",
	"db":      "db",
	"api-url": "api_url",
	"dev":     "dev_mode",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("dev_mode", false)
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("db", "")
	v.SetDefault("api_url", "https://json-data-1wm2.onrender.com")
	v.SetDefault("agency_email", "")
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("cache_ttl", time.Hour)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "wander")
	v.SetDefault("tracing.insecure", false)
}

// DefaultPath returns ~/.config/wander/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "wander", "config.yaml"), nil
}

// Load reads the configuration. An explicit path must exist; without one
// the default file is used if present. Flags that were set on the command
// line take precedence over everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readFile(v, path); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}

	def, err := DefaultPath()
	if err != nil {
		return err
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Dir(def))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

// Masked returns a copy safe to print, with secrets replaced.
func (c Config) Masked() Config {
	if c.SMTP.Pass != "" {
		c.SMTP.Pass = mask
	}
	if c.Redis.Password != "" {
		c.Redis.Password = mask
	}
	return c
}
