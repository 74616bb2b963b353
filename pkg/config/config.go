// Package config loads the application configuration snapshot.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"treectx/pkg/exclude"
)

// FileName is the per-project configuration file looked up in the working
// directory when no explicit path is given.
const FileName = ".treectx.yaml"

// Config is the read-only settings snapshot consumed by the core. Exclusion
// rules, output location, and selection-state location all come from here.
type Config struct {
	ExcludeFiles  []string `mapstructure:"exclude_files"`
	ExcludePaths  []string `mapstructure:"exclude_paths"`
	ExcludeHidden bool     `mapstructure:"exclude_hidden"`
	OutputFile    string   `mapstructure:"output_file"`
	SelectionFile string   `mapstructure:"selection_file"`
	TokenModel    string   `mapstructure:"token_model"`
}

// ExclusionRules converts the snapshot into the exclusion policy input.
func (c Config) ExclusionRules() exclude.Rules {
	return exclude.Rules{
		Files:  c.ExcludeFiles,
		Paths:  c.ExcludePaths,
		Hidden: c.ExcludeHidden,
	}
}

// Load reads configuration from explicitPath when given, otherwise from
// FileName in workingDir. A missing implicit file yields defaults; a missing
// explicit file is an error.
func Load(workingDir, explicitPath string) (Config, error) {
	reader := viper.New()
	reader.SetDefault("exclude_hidden", true)
	reader.SetDefault("output_file", "treectx-context.txt")
	reader.SetDefault("selection_file", ".treectx-selection.yaml")
	reader.SetDefault("token_model", "gpt-4o")

	configPath := explicitPath
	if configPath == "" {
		configPath = filepath.Join(workingDir, FileName)
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				configPath = ""
			} else {
				return Config{}, fmt.Errorf("stat configuration %s: %w", configPath, err)
			}
		}
	}

	if configPath != "" {
		reader.SetConfigFile(configPath)
		if err := reader.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read configuration from %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := reader.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	return cfg, nil
}
