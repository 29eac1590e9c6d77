// Package config handles cypherview configuration via environment
// variables, with optional YAML file overrides.
//
// Environment variables keep the tool drop-in compatible with Neo4j
// deployment workflows; the NEO4J_AUTH value uses the familiar
// "username/password" (or "none") form.
//
// Example Usage:
//
//	cfg := config.LoadFromEnv()
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid config: %v", err)
//	}
//
// Environment Variables:
//
//   - NEO4J_URI="bolt://localhost:7687"
//   - NEO4J_AUTH="neo4j/password" or "none"
//   - NEO4J_DATABASE="" (engine default)
//   - NEO4J_MULTI_STATEMENT=true
//   - NEO4J_MAX_CONCURRENCY=10
//   - NEO4J_CONNECTION_TIMEOUT=30s
//   - CYPHERVIEW_COLOR_STORE="" (path; empty disables persistent colors)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all cypherview configuration.
type Config struct {
	// Connection settings for the query engine
	Connection ConnectionConfig `yaml:"connection"`

	// Interpreter behavior
	Interpreter InterpreterConfig `yaml:"interpreter"`

	// Label color persistence
	Colors ColorConfig `yaml:"colors"`
}

// ConnectionConfig holds engine connection settings.
type ConnectionConfig struct {
	// URI is the bolt/neo4j connection URI
	URI string `yaml:"uri"`
	// Username for basic auth (empty disables auth)
	Username string `yaml:"username"`
	// Password for basic auth
	Password string `yaml:"password"`
	// Database name; empty selects the engine default
	Database string `yaml:"database"`
	// Timeout bounds connection acquisition
	Timeout time.Duration `yaml:"timeout"`
}

// InterpreterConfig holds interpretation settings.
type InterpreterConfig struct {
	// MultiStatement governs splitting input on statement separators
	MultiStatement bool `yaml:"multiStatement"`
	// MaxConcurrency bounds parallel interpretations; 0 is unbounded
	MaxConcurrency int `yaml:"maxConcurrency"`
}

// ColorConfig holds label color persistence settings.
type ColorConfig struct {
	// StorePath is the directory of the persistent color database.
	// Empty keeps colors in memory only.
	StorePath string `yaml:"storePath"`
}

// LoadFromEnv builds a Config from environment variables, applying
// defaults for anything unset. Malformed values fall back to their
// defaults rather than failing.
func LoadFromEnv() *Config {
	config := &Config{}

	config.Connection.URI = getEnv("NEO4J_URI", "bolt://localhost:7687")
	config.Connection.Database = getEnv("NEO4J_DATABASE", "")
	config.Connection.Timeout = getEnvDuration("NEO4J_CONNECTION_TIMEOUT", 30*time.Second)

	// NEO4J_AUTH format: "username/password" or "none"
	authStr := getEnv("NEO4J_AUTH", "none")
	if authStr != "none" {
		parts := strings.SplitN(authStr, "/", 2)
		if len(parts) == 2 {
			config.Connection.Username = parts[0]
			config.Connection.Password = parts[1]
		} else {
			config.Connection.Username = "neo4j"
			config.Connection.Password = authStr
		}
	}

	config.Interpreter.MultiStatement = getEnvBool("NEO4J_MULTI_STATEMENT", true)
	config.Interpreter.MaxConcurrency = getEnvInt("NEO4J_MAX_CONCURRENCY", 10)

	config.Colors.StorePath = getEnv("CYPHERVIEW_COLOR_STORE", "")

	return config
}

// LoadFile overlays YAML settings from path onto the config. Only keys
// present in the file are touched.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for use.
func (c *Config) Validate() error {
	if c.Connection.URI == "" {
		return fmt.Errorf("connection URI is required")
	}
	if c.Interpreter.MaxConcurrency < 0 {
		return fmt.Errorf("invalid max concurrency: %d", c.Interpreter.MaxConcurrency)
	}
	return nil
}

// String returns a log-safe representation; the password is never
// included.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{URI: %s, User: %s, Database: %q, MultiStatement: %v, MaxConcurrency: %d}",
		c.Connection.URI,
		c.Connection.Username,
		c.Connection.Database,
		c.Interpreter.MultiStatement,
		c.Interpreter.MaxConcurrency,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(val)
		return val == "true" || val == "1" || val == "yes" || val == "on"
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}
