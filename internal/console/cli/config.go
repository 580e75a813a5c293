package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CONSULTCTL_"

// Config is the console's configuration.
//
// Precedence, highest first: command-line flags, CONSULTCTL_* environment
// (a .env file in the working directory is loaded first), the YAML file
// named by --config, then defaults.
type Config struct {
	Server            string `yaml:"server" validate:"required,http_url"`
	AdminPassword     string `yaml:"admin_password" validate:"required_without=AdminPasswordHash"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
	TimeoutSeconds    int    `yaml:"timeout_seconds" validate:"min=1,max=300"`
	PageSize          int    `yaml:"page_size" validate:"min=1,max=100"`
}

// Timeout returns the per-call HTTP timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Server:         "http://localhost:8080",
		TimeoutSeconds: 15,
		PageSize:       50,
	}
}

var validate = validator.New()

// configKeys maps each setting to its env suffix and flag name.
var configKeys = []struct {
	env, flag string
	set       func(*Config, string) error
}{
	{"SERVER", "server", func(c *Config, v string) error { c.Server = v; return nil }},
	{"ADMIN_PASSWORD", "admin-password", func(c *Config, v string) error { c.AdminPassword = v; return nil }},
	{"ADMIN_PASSWORD_HASH", "admin-password-hash", func(c *Config, v string) error { c.AdminPasswordHash = v; return nil }},
	{"TIMEOUT_SECONDS", "timeout", func(c *Config, v string) error { return setInt(&c.TimeoutSeconds, v) }},
	{"PAGE_SIZE", "page-size", func(c *Config, v string) error { return setInt(&c.PageSize, v) }},
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("not a number: %q", v)
	}
	*dst = n
	return nil
}

// LoadConfig loads .env, then resolves the configuration. flags holds the
// values of flags the user actually set, keyed by flag name.
func LoadConfig(path string, flags map[string]string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return resolveConfig(path, os.LookupEnv, flags)
}

func resolveConfig(path string, lookup func(string) (string, bool), flags map[string]string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	for _, k := range configKeys {
		if v, ok := lookup(EnvPrefix + k.env); ok && v != "" {
			if err := k.set(&cfg, v); err != nil {
				return Config{}, fmt.Errorf("%s%s: %w", EnvPrefix, k.env, err)
			}
		}
	}
	for _, k := range configKeys {
		if v, ok := flags[k.flag]; ok {
			if err := k.set(&cfg, v); err != nil {
				return Config{}, fmt.Errorf("--%s: %w", k.flag, err)
			}
		}
	}

	cfg.Server = strings.TrimRight(strings.TrimSpace(cfg.Server), "/")
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
