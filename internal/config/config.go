// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads AdAway's configuration from defaults, the
// adaway.yaml file, ADAWAY_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Database Database `mapstructure:"database" yaml:"database"`
	Language string   `mapstructure:"language" yaml:"language"`
	Log      Log      `mapstructure:"log" yaml:"log"`
}

// Database configures the hosts sources store.
type Database struct {
	Path          string `mapstructure:"path" yaml:"path"`
	UpgradePolicy string `mapstructure:"upgrade_policy" yaml:"upgrade_policy"`
}

// Log configures the application logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns the default value for every configuration key.
func Defaults() map[string]any {
	return map[string]any{
		"database.path":           "./adaway.db",
		"database.upgrade_policy": "additive",
		"language":                "en",
		"log.level":               "info",
	}
}

// FlagBindings maps configuration keys to the command-line flags that
// override them.
var FlagBindings = map[string]string{
	"database.path":           "db",
	"database.upgrade_policy": "upgrade-policy",
	"language":                "lang",
	"log.level":               "log-level",
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "AdAway")
		default: // Linux, macOS, etc.
			configDir = "/etc/adaway"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "adaway")
	}

	return filepath.Join(configDir, "adaway.yaml"), nil
}

// LoadConfig builds a T from defaults, config files, environment and the
// flags of cmd. A missing config file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("adaway")
	v.SetConfigType("yaml")

	// An explicit --config path has the highest precedence among files.
	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.SetEnvPrefix("adaway")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key, name := range FlagBindings {
			if f := lookupFlag(cmd, name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

// WriteConfigFile writes c as YAML to the user (or system) config path and
// returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigFileTo(c, path)
}

// WriteConfigFileTo writes c as YAML to path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o600)
}
