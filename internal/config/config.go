// Package config loads the server configuration: the set of target
// environments, the transport, and the log level. Configuration is read
// once at startup and treated as immutable for the process lifetime.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the full server configuration.
type Config struct {
	// DefaultEnvironment names the environment used when a tool call does
	// not pick one.
	DefaultEnvironment string `toml:"default_environment"`
	LogLevel           string `toml:"log_level"`
	Transport          string `toml:"transport"`
	// HTTPAddr is the listen address for the streamable-HTTP transport.
	HTTPAddr string `toml:"http_addr"`

	Environments map[string]EnvironmentConfig `toml:"environments"`
}

// EnvironmentConfig is the TOML shape of one environment entry.
type EnvironmentConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	Database       string `toml:"database"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	PoolSize       int    `toml:"pool_size"`
}

// Default returns the configuration used when no file is given: a single
// "local" environment seeded from TDENGINE_* environment variables, falling
// back to the stock taosAdapter defaults.
func Default() *Config {
	return &Config{
		DefaultEnvironment: "local",
		LogLevel:           envOr("TDENGINE_LOG_LEVEL", "info"),
		Transport:          TransportStdio,
		HTTPAddr:           ":8000",
		Environments: map[string]EnvironmentConfig{
			"local": {
				Host:           envOr("TDENGINE_HOST", "127.0.0.1"),
				Port:           envIntOr("TDENGINE_PORT", 6041),
				Username:       envOr("TDENGINE_USERNAME", "root"),
				Password:       envOr("TDENGINE_PASSWORD", "taosdata"),
				Database:       envOr("TDENGINE_DATABASE", "default"),
				TimeoutSeconds: envIntOr("TDENGINE_TIMEOUT", 30),
				PoolSize:       database.DefaultPoolSize,
			},
		},
	}
}

// Load reads a TOML configuration file, layered over Default. An empty path
// returns the defaults; a missing file is an error (a misspelled path should
// not silently fall back to localhost).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	// A config file defines its own environment set; the implicit local
	// environment does not leak through.
	cfg.Environments = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if len(c.Environments) == 0 {
		return fmt.Errorf("no environments configured")
	}
	if c.DefaultEnvironment == "" {
		return fmt.Errorf("default_environment is not set")
	}
	if _, ok := c.Environments[c.DefaultEnvironment]; !ok {
		return fmt.Errorf("default_environment %q is not among the configured environments", c.DefaultEnvironment)
	}
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("transport must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport)
	}
	for name, env := range c.Environments {
		if env.Host == "" {
			return fmt.Errorf("environment %q has no host", name)
		}
	}
	return nil
}

// DatabaseEnvironments converts the TOML entries into the registry's
// immutable environment descriptions.
func (c *Config) DatabaseEnvironments() []database.EnvironmentConfig {
	envs := make([]database.EnvironmentConfig, 0, len(c.Environments))
	for name, env := range c.Environments {
		port := env.Port
		if port == 0 {
			port = 6041
		}
		timeout := time.Duration(env.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = database.DefaultQueryTimeout
		}
		envs = append(envs, database.EnvironmentConfig{
			Name:     name,
			Host:     env.Host,
			Port:     port,
			Username: env.Username,
			Password: env.Password,
			Database: env.Database,
			Timeout:  timeout,
			PoolSize: env.PoolSize,
		})
	}
	return envs
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
