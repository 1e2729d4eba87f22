package api

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the install service configuration, loaded from YAML. Timeouts
// are written in Go duration syntax ("10s", "1m30s").
type Config struct {
	ListenAddr      string        `yaml:"listen_addr"`
	LogLevel        string        `yaml:"log_level"`
	StateFile       string        `yaml:"state_file"`
	ProbeTimeout    time.Duration `yaml:"probe_timeout"`
	InstallTimeout  time.Duration `yaml:"install_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// UnmarshalYAML parses the duration fields from strings; yaml.v3 would
// otherwise only accept integer nanoseconds.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		ListenAddr      string `yaml:"listen_addr"`
		LogLevel        string `yaml:"log_level"`
		StateFile       string `yaml:"state_file"`
		ProbeTimeout    string `yaml:"probe_timeout"`
		InstallTimeout  string `yaml:"install_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.ListenAddr = raw.ListenAddr
	c.LogLevel = raw.LogLevel
	c.StateFile = raw.StateFile

	durations := []struct {
		name string
		in   string
		out  *time.Duration
	}{
		{"probe_timeout", raw.ProbeTimeout, &c.ProbeTimeout},
		{"install_timeout", raw.InstallTimeout, &c.InstallTimeout},
		{"shutdown_timeout", raw.ShutdownTimeout, &c.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.in == "" {
			*d.out = 0
			continue
		}
		parsed, err := time.ParseDuration(d.in)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.name, err)
		}
		*d.out = parsed
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":8800",
		LogLevel:        "info",
		StateFile:       "installd.state",
		ProbeTimeout:    10 * time.Second,
		InstallTimeout:  90 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadConfig reads a YAML config file, filling unset fields with defaults.
// An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	def := DefaultConfig()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.StateFile == "" {
		cfg.StateFile = def.StateFile
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = def.ProbeTimeout
	}
	if cfg.InstallTimeout <= 0 {
		cfg.InstallTimeout = def.InstallTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	return cfg, nil
}
