// Package config resolves where tasks are stored and how they are shown.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/idilsaglam/taskman/internal/store/jsonstore"
)

const (
	// AppName is the configuration directory name.
	AppName = "taskman"

	// FileName is the config file name inside the global config directory.
	FileName = "config.yaml"

	// ProjectFileName is looked up in the working directory and overrides the global file.
	ProjectFileName = ".taskman.yaml"
)

// Config holds the resolved settings.
type Config struct {
	// File is the JSON data file.
	File string `yaml:"file" mapstructure:"file"`

	// Theme is one of classic, neon or mono.
	Theme string `yaml:"theme" mapstructure:"theme"`

	// LogLevel is a charmbracelet/log level name.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		File:     jsonstore.DefaultFileName,
		Theme:    "classic",
		LogLevel: "warn",
	}
}

// Load merges the global config, the project config and an optional explicit
// file, later sources overriding earlier ones. Missing files are skipped.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	paths := []string{GlobalPath()}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ProjectFileName))
	}
	for _, p := range paths {
		if err := loadFile(p, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", p, err)
		}
	}

	if explicit != "" {
		if err := loadFile(explicit, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", explicit, err)
		}
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

// Dir returns the global configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// GlobalPath returns the path to the global config file.
func GlobalPath() string {
	return filepath.Join(Dir(), FileName)
}
