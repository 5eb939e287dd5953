// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI client configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// API
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"` // Talent API root, e.g. http://localhost:8080
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`       // Bearer token from a previous login

	// Credentials used when no token is configured
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Behavior
	Timeout    Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`         // Per-request timeout; zero means none
	StaleAfter Duration `json:"stale_after,omitempty" yaml:"stale_after,omitempty"` // Profile refetch window
	Verbose    bool     `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// DefaultBaseURL is used when neither the config file nor flags name a server.
const DefaultBaseURL = "http://localhost:8080"

// Duration is a time.Duration that reads as "30s"-style text in JSON and YAML.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	return d.parse(s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'base_url' is not an absolute URL: %s", c.BaseURL)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	if c.StaleAfter < 0 {
		return fmt.Errorf("config error: 'stale_after' must be non-negative")
	}
	if (c.Username == "") != (c.Password == "") {
		return fmt.Errorf("config error: 'username' and 'password' must be set together")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.BaseURL == "" {
		result.BaseURL = DefaultBaseURL
	}
	if result.Token == "" {
		result.Token = defaults.Token
	}
	if result.Username == "" {
		result.Username = defaults.Username
	}
	if result.Password == "" {
		result.Password = defaults.Password
	}
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.StaleAfter == 0 {
		result.StaleAfter = defaults.StaleAfter
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
