// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the TaskFlow client configuration from defaults,
// YAML files, TASKFLOW_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the effective client configuration.
type Config struct {
	API         APIConfig         `mapstructure:"api" yaml:"api"`
	Credentials CredentialsConfig `mapstructure:"credentials" yaml:"credentials"`
	Session     SessionConfig     `mapstructure:"session" yaml:"session"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Language    string            `mapstructure:"language" yaml:"language"`
}

// APIConfig points the client at the TaskFlow backend.
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url"`
	GraphQLURL string        `mapstructure:"graphql_url" yaml:"graphql_url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// CredentialsConfig selects the persistence medium for the token pair.
// Store is one of "file", "database", "cookie", "memory" or "none".
type CredentialsConfig struct {
	Store    string         `mapstructure:"store" yaml:"store"`
	Path     string         `mapstructure:"path" yaml:"path"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
}

// DatabaseConfig is used when Store is "database".
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// SessionConfig tunes the session manager.
type SessionConfig struct {
	RefreshSkew time.Duration `mapstructure:"refresh_skew" yaml:"refresh_skew"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Defaults returns the built-in configuration values keyed by viper key.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":              "http://api.localhost:8000",
		"api.graphql_url":           "http://api.localhost:8000/graphql",
		"api.timeout":               15 * time.Second,
		"credentials.store":         "file",
		"credentials.path":          "",
		"credentials.database.type": "sqlite",
		"credentials.database.dsn":  "./taskflow.db",
		"session.refresh_skew":      30 * time.Second,
		"log.level":                 "warn",
		"log.file":                  "",
		"language":                  "en",
	}
}

// FlagBindings maps viper keys to the command-line flag that overrides them.
var FlagBindings = map[string]string{
	"api.base_url":      "api-url",
	"api.graphql_url":   "graphql-url",
	"credentials.store": "store",
	"language":          "lang",
	"log.level":         "log-level",
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "TaskFlow")
		default: // Linux, macOS, etc.
			configDir = "/etc/taskflow"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "taskflow")
	}

	return filepath.Join(configDir, "taskflow.yaml"), nil
}

// DefaultCredentialsPath is where the file medium keeps tokens when
// credentials.path is empty.
func DefaultCredentialsPath() (string, error) {
	p, err := GetConfigPath(false)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(p), "credentials.yaml"), nil
}

// LoadConfig builds a T from defaults, config files, environment and the
// flags of cmd. A missing or empty config file is reported as
// viper.ConfigFileNotFoundError together with the default-filled value.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("taskflow")
	v.SetConfigType("yaml")

	// An explicit --config path takes precedence over the search paths.
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
		notFound = err
	} else if isEmptyFile(v.ConfigFileUsed()) {
		notFound = viper.ConfigFileNotFoundError{}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("taskflow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		flags := cmd.Flags()
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

func isEmptyFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() == 0
}

// WriteConfigFile persists c as YAML to the user or system config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

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
