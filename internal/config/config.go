// Package config persists the setup tool's own settings: where the install
// service lives and the non-secret connection defaults remembered between
// runs. Passwords are never written here.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const configFile = ".vitrine/setup.json"
const lockFile = ".vitrine/setup.json.lock"

// DefaultServerURL is used when no server has been configured.
const DefaultServerURL = "http://localhost:8800"

// Config is the on-disk settings shape.
type Config struct {
	ServerURL string `json:"server_url,omitempty"`

	// Remembered database step defaults (non-secret fields only).
	LastHost     string `json:"last_host,omitempty"`
	LastPort     string `json:"last_port,omitempty"`
	LastDatabase string `json:"last_database,omitempty"`
	LastUser     string `json:"last_user,omitempty"`
}

// Load reads the config from disk. A missing file yields an empty config.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename).
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "setup-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// withLock serializes read-modify-write cycles using flock.
func withLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	return fn()
}

// ServerURL returns the configured install service URL, falling back to the
// default.
func ServerURL(baseDir string) string {
	cfg, err := Load(baseDir)
	if err != nil || cfg.ServerURL == "" {
		return DefaultServerURL
	}
	return cfg.ServerURL
}

// SetServerURL persists the install service URL.
func SetServerURL(baseDir, url string) error {
	return withLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		cfg.ServerURL = url
		return Save(baseDir, cfg)
	})
}

// RememberConnection persists the non-secret connection fields for the next
// run's defaults.
func RememberConnection(baseDir, host, port, database, user string) error {
	return withLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		cfg.LastHost = host
		cfg.LastPort = port
		cfg.LastDatabase = database
		cfg.LastUser = user
		return Save(baseDir, cfg)
	})
}
