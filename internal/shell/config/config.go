// Package config loads the shell's optional YAML config file.
//
// Precedence is defaults, then the file, then environment. A missing file
// is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/AuraOS/internal/discovery"
	"github.com/GriffinCanCode/AuraOS/internal/shared/paths"
)

// Environment overrides
const (
	EnvAPIBase = "AURA_API_BASE"
	EnvHost    = "AURA_HOST"
)

// Config holds shell settings
type Config struct {
	// APIBase pins the relay; when empty the prober picks one
	APIBase        string        `yaml:"api_base"`
	Host           string        `yaml:"host"`
	Candidates     []string      `yaml:"candidates"`
	HealthInterval time.Duration `yaml:"health_interval"`
	HomeInterval   time.Duration `yaml:"home_interval"`
	ProbeTimeout   time.Duration `yaml:"probe_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
	StoragePath    string        `yaml:"storage_path"`
	Latitude       *float64      `yaml:"lat"`
	Longitude      *float64      `yaml:"lng"`
	AssetsDir      string        `yaml:"assets_dir"`
	Speech         bool          `yaml:"speech"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		HealthInterval: discovery.ShellInterval,
		HomeInterval:   discovery.HomeInterval,
		ProbeTimeout:   discovery.DefaultProbeTimeout,
		RequestTimeout: 60 * time.Second,
		LogFile:        paths.ShellLog(),
		LogLevel:       "info",
		StoragePath:    paths.Storage(),
	}
}

// Load reads path over the defaults and applies the environment.
// An empty path means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = paths.ShellConfig()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read shell config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse shell config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIBase); v != "" {
		c.APIBase = v
	}
	if v := os.Getenv(EnvHost); v != "" {
		c.Host = v
	}
}

// Validate checks interval and coordinate settings
func (c *Config) Validate() error {
	if c.HealthInterval <= 0 || c.HomeInterval <= 0 {
		return errors.New("shell config: poll intervals must be positive")
	}
	if c.ProbeTimeout <= 0 {
		return errors.New("shell config: probe_timeout must be positive")
	}
	if (c.Latitude == nil) != (c.Longitude == nil) {
		return errors.New("shell config: lat and lng must be set together")
	}
	return nil
}

// ProbeCandidates returns the ordered relay candidates. A pinned APIBase
// goes first, then configured candidates, then the built-in list.
func (c *Config) ProbeCandidates() []string {
	var out []string
	if c.APIBase != "" {
		out = append(out, c.APIBase)
	}
	out = append(out, c.Candidates...)
	out = append(out, discovery.DefaultCandidates(c.Host)...)
	return discovery.Dedupe(out)
}
