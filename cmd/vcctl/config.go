package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config represents the vcctl configuration file (~/.config/vcctl/config.yaml).
// Pointer fields distinguish "not set" from zero values; a set flag always
// wins over the config file.
type Config struct {
	Strict   *bool  `yaml:"strict"`
	JSON     *bool  `yaml:"json"`
	LogLevel string `yaml:"log_level"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vcctl", "config.yaml")
}

// loadConfig reads the config file if present. A missing or unreadable file
// yields the zero config; a malformed one is reported and otherwise ignored.
func loadConfig() Config {
	var cfg Config
	path := configPath()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.WithError(err).Warnf("ignoring malformed config %s", path)
		return Config{}
	}
	return cfg
}

// applyConfig applies config file defaults to flags the user did not set.
func applyConfig(cmd *cobra.Command, cfg Config) {
	flags := cmd.Root().PersistentFlags()
	if cfg.Strict != nil && !flags.Changed("strict") {
		strict = *cfg.Strict
	}
	if cfg.JSON != nil && !flags.Changed("json") {
		jsonOut = *cfg.JSON
	}
	switch cfg.LogLevel {
	case "debug":
		if !flags.Changed("verbose") {
			verbose = true
		}
	case "error":
		if !flags.Changed("quiet") {
			quiet = true
		}
	}
}
