// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "rbd"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

type (
	// BundleConfig holds defaults for the bundle command.
	BundleConfig struct {
		// Output is the archive filename written into the pack root.
		Output string `mapstructure:"output" toml:"output"`
		// Packignore is the ignore-file name looked up in the pack root.
		Packignore string `mapstructure:"packignore" toml:"packignore"`
	}

	// UpstreamConfig identifies the Builder's Delight repository the
	// generator reads chisel definitions from.
	UpstreamConfig struct {
		Owner string `mapstructure:"owner" toml:"owner"`
		Repo  string `mapstructure:"repo" toml:"repo"`
		// Path is the in-repo directory holding chisel definitions.
		Path string `mapstructure:"path" toml:"path"`
		// Ref is the branch or tag to read from.
		Ref string `mapstructure:"ref" toml:"ref"`
	}

	// GenerateConfig holds defaults for the generate command.
	GenerateConfig struct {
		// OutputDir is where chiseling recipes are written, relative to
		// the pack root.
		OutputDir string `mapstructure:"output_dir" toml:"output_dir"`
	}

	// Config is the full tool configuration.
	Config struct {
		Bundle   BundleConfig   `mapstructure:"bundle" toml:"bundle"`
		Upstream UpstreamConfig `mapstructure:"upstream" toml:"upstream"`
		Generate GenerateConfig `mapstructure:"generate" toml:"generate"`
	}
)

// DefaultConfig returns the built-in configuration values.
func DefaultConfig() *Config {
	return &Config{
		Bundle: BundleConfig{
			Output:     "pack.zip",
			Packignore: ".packignore",
		},
		Upstream: UpstreamConfig{
			Owner: "Tynoxs",
			Repo:  "BuildersDelight",
			Path:  "src/main/resources/data/buildersdelight/chisel",
			Ref:   "1.20.1",
		},
		Generate: GenerateConfig{
			OutputDir: filepath.Join("data", "rechiseld", "chiseling_recipes"),
		},
	}
}

// ConfigDir returns the rbd configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the full path of the config file.
func ConfigFilePath() (string, error) {
	if configFilePathOverride != "" {
		return configFilePathOverride, nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the configuration: defaults, then the config file when present,
// then RBD_-prefixed environment variables. A missing config file is not an
// error.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("bundle.output", defaults.Bundle.Output)
	v.SetDefault("bundle.packignore", defaults.Bundle.Packignore)
	v.SetDefault("upstream.owner", defaults.Upstream.Owner)
	v.SetDefault("upstream.repo", defaults.Upstream.Repo)
	v.SetDefault("upstream.path", defaults.Upstream.Path)
	v.SetDefault("upstream.ref", defaults.Upstream.Ref)
	v.SetDefault("generate.output_dir", defaults.Generate.OutputDir)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(path)
	v.SetConfigType(ConfigFileExt)
	if err := v.ReadInConfig(); err != nil {
		// Absence means defaults; anything else is a real problem.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// WriteDefault writes the default configuration as TOML to path, creating
// parent directories as needed. Fails if the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
