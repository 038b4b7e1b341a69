package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appName = "todo"

// Config holds user settings read from config.yaml
type Config struct {
	// Database is the path to the SQLite file
	Database string `yaml:"database"`
	// LogFile receives log output while the terminal UI is running
	LogFile string `yaml:"log_file"`
	// HideCompleted is the initial filter when no preference is stored yet
	HideCompleted bool `yaml:"hide_completed"`
	// Theme names the color theme; empty means the default
	Theme string `yaml:"theme"`
}

// Default returns the configuration used when no file exists
func Default() (*Config, error) {
	dataDir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Database: filepath.Join(dataDir, "todo.db"),
		LogFile:  filepath.Join(dataDir, "todo.log"),
	}, nil
}

// Path returns the default config file location
func Path() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appName, "config.yaml"), nil
}

// Load reads the config at path over the defaults. A missing file is not an
// error. TODO_DATABASE and TODO_LOG_FILE override the file.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("TODO_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	cfg.Database = expandHome(cfg.Database)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, nil
}

// dataDir uses the XDG data directory or falls back to the home directory
func dataDir() (string, error) {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, appName), nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
