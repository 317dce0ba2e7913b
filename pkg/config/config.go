// Package config provides configuration loading and management for maskmeta.
// It handles loading configuration from YAML or TOML files, parsing name/value
// option lists, and provides default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"maskmeta/pkg/logging"
	"maskmeta/pkg/meta"
	"maskmeta/pkg/neighbors"
)

// Config represents the application configuration loaded from YAML or TOML
type Config struct {
	// Neighbor search and assembly parameters
	Meta struct {
		// Radius is the neighbor search radius in lattice units
		Radius int `yaml:"radius" toml:"radius"`

		// BuildAdjacency requests the sparse adjacency matrix
		BuildAdjacency bool `yaml:"buildAdjacency" toml:"buildAdjacency"`

		// Accelerate prefers the parallel neighbor search
		Accelerate bool `yaml:"accelerate" toml:"accelerate"`

		// Metric is "chebyshev" or "euclidean"
		Metric string `yaml:"metric" toml:"metric"`

		// Strategy forces a neighbor strategy by name; empty lets Accelerate decide
		Strategy string `yaml:"strategy" toml:"strategy"`
	} `yaml:"meta" toml:"meta"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores the parallel search may use
		NumCores int `yaml:"numCores" toml:"numCores"`
	} `yaml:"processing" toml:"processing"`

	// Output parameters
	Output struct {
		// SlicesDir, when set, receives neighbor-count slices of the mask
		SlicesDir string `yaml:"slicesDir" toml:"slicesDir"`
	} `yaml:"output" toml:"output"`

	// Log configures the logger
	Log logging.Config `yaml:"log" toml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default search parameters
	cfg.Meta.Radius = meta.DefaultRadius
	cfg.Meta.BuildAdjacency = meta.DefaultBuildAdjacency
	cfg.Meta.Accelerate = meta.DefaultAccelerate
	cfg.Meta.Metric = meta.DefaultMetric.String()

	// Use all available cores by default
	cfg.Processing.NumCores = runtime.NumCPU()

	// Set default log parameters
	cfg.Log.MaxSize = 100
	cfg.Log.MaxAge = 28

	return cfg
}

// yamlUnknownField matches the message yaml.v3 emits for a key without a
// destination field when KnownFields is enabled.
var yamlUnknownField = regexp.MustCompile(`field (\S+) not found in type`)

// LoadConfig loads configuration from a YAML or TOML file, chosen by the
// ".toml" extension. If the file doesn't exist, it returns the default
// configuration. Keys that match no setting are reported as unrecognized
// options.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("error parsing config file: %w", meta.UnknownOption(undecoded[0].String()))
		}
		return cfg, nil
	}

	// Parse YAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			for _, msg := range te.Errors {
				if m := yamlUnknownField.FindStringSubmatch(msg); m != nil {
					return nil, fmt.Errorf("error parsing config file: %w", meta.UnknownOption(m[1]))
				}
			}
		}
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Options converts the configuration into build options.
func (c *Config) Options(logger logging.Logger) (meta.Options, error) {
	opts := meta.DefaultOptions()
	opts.Radius = c.Meta.Radius
	opts.BuildAdjacency = c.Meta.BuildAdjacency
	opts.Accelerate = c.Meta.Accelerate
	opts.Workers = c.Processing.NumCores
	opts.Logger = logger

	metric, err := neighbors.ParseMetric(c.Meta.Metric)
	if err != nil {
		return opts, meta.InvalidOption(meta.OptMetric, c.Meta.Metric)
	}
	opts.Metric = metric

	opts.Strategy = c.Meta.Strategy

	return opts, opts.Validate()
}
