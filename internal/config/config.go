// Package config loads the wslpath2 TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sverrirab/wslpath2/pathconv"
)

// DistroEnv overrides wsl.distro when set.
const DistroEnv = "WSLPATH2_DISTRO"

type Config struct {
	WSL      WSLConfig      `toml:"wsl"`
	Defaults DefaultsConfig `toml:"defaults"`
}

type WSLConfig struct {
	Executable string `toml:"executable"`
	Tool       string `toml:"tool"`
	// Distro selects the distribution that runs wslpath. Empty means the WSL default.
	Distro string `toml:"distro"`
}

type DefaultsConfig struct {
	Mode     string `toml:"mode"`
	Absolute bool   `toml:"absolute"`
}

// Load reads the config from $XDG_CONFIG_HOME/wslpath2/config.toml
// (or ~/.config/wslpath2/config.toml).
// Returns defaults if the file doesn't exist.
func Load() (*Config, error) {
	path := Path()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := defaults()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config from path. Unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if c.WSL.Executable == "" {
		return errors.New("wsl.executable must not be empty")
	}
	if c.WSL.Tool == "" {
		return errors.New("wsl.tool must not be empty")
	}
	if _, err := pathconv.ParseConversion(c.Defaults.Mode); err != nil {
		return fmt.Errorf("defaults.mode: %w", err)
	}
	return nil
}

// Conversion returns the parsed default conversion mode.
func (c *Config) Conversion() (pathconv.Conversion, error) {
	return pathconv.ParseConversion(c.Defaults.Mode)
}

// Converter returns a path converter using the configured executable and tool.
func (c *Config) Converter() *pathconv.Converter {
	return &pathconv.Converter{
		Executable: c.WSL.Executable,
		Tool:       c.WSL.Tool,
	}
}

func (c *Config) applyEnv() {
	if d, ok := os.LookupEnv(DistroEnv); ok {
		c.WSL.Distro = d
	}
}

func defaults() *Config {
	return &Config{
		WSL: WSLConfig{
			Executable: pathconv.DefaultExecutable,
			Tool:       pathconv.DefaultTool,
		},
		Defaults: DefaultsConfig{
			Mode: pathconv.WSLToWindows.String(),
		},
	}
}

// Path returns the location Load reads from.
func Path() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wslpath2", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wslpath2", "config.toml")
}
