// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all console configuration.
type Config struct {
	Server Server `yaml:"server"`
	Phone  Phone  `yaml:"phone"`
}

// Server holds backend connection settings.
type Server struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Phone holds phone-number normalization settings.
type Phone struct {
	// DefaultRegion interprets numbers entered without a country prefix
	// (ISO 3166-1 alpha-2).
	DefaultRegion string `yaml:"default_region"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: Server{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Phone: Phone{
			DefaultRegion: "US",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid server.base_url %q: %w", c.Server.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: server.base_url %q must include scheme and host", c.Server.BaseURL)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("config: server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if len(c.Phone.DefaultRegion) != 2 {
		return fmt.Errorf("config: phone.default_region must be a two-letter region code, got %q", c.Phone.DefaultRegion)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: AUTONEURA_BASE_URL, AUTONEURA_TIMEOUT, AUTONEURA_PHONE_REGION.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("AUTONEURA_BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("AUTONEURA_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid AUTONEURA_TIMEOUT %q: %w", v, err)
		}
		c.Server.Timeout = d
	}
	if v := os.Getenv("AUTONEURA_PHONE_REGION"); v != "" {
		c.Phone.DefaultRegion = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Server *rawServer `yaml:"server"`
	Phone  *rawPhone  `yaml:"phone"`
}

type rawServer struct {
	BaseURL *string        `yaml:"base_url"`
	Timeout *time.Duration `yaml:"timeout"`
}

type rawPhone struct {
	DefaultRegion *string `yaml:"default_region"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Server != nil {
		if layer.Server.BaseURL != nil {
			c.Server.BaseURL = *layer.Server.BaseURL
		}
		if layer.Server.Timeout != nil {
			c.Server.Timeout = *layer.Server.Timeout
		}
	}
	if layer.Phone != nil {
		if layer.Phone.DefaultRegion != nil {
			c.Phone.DefaultRegion = *layer.Phone.DefaultRegion
		}
	}
}
