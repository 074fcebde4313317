// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package config loads dimcalc settings. Precedence, highest first: flags,
// DIMCALC_ environment variables, the config file, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/system"
)

const (
	// DefaultFile is looked for in the working directory when no config file
	// is named.
	DefaultFile = "dimcalc.yaml"
	EnvPrefix   = "DIMCALC_"

	maxPrecision = 1000
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Precision is the number of decimal places kept by inexact divisions.
	Precision int32         `koanf:"precision"`
	Verify    bool          `koanf:"verify"`
	Trace     bool          `koanf:"trace"`
	System    string        `koanf:"system"`
	History   HistoryConfig `koanf:"history"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"precision":       int(number.PRECISION),
		"verify":          false,
		"trace":           false,
		"system":          "",
		"history.enabled": false,
		"history.path":    "",
	}
}

// flag names that do not match their config key
var flagKeys = map[string]string{
	"history":      "history.enabled",
	"history-path": "history.path",
}

// Load reads configuration from path (or DefaultFile when it exists), the
// environment and the flags that were explicitly set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findFile(path)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// DIMCALC_HISTORY_PATH -> history.path
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = f.Name
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}
	return ""
}

// ApplyDefaults fills in values that depend on the environment, such as the
// history database under the home directory.
func (c *Config) ApplyDefaults() error {
	if c.History.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.History.Path = filepath.Join(home, ".dimcalc", "history.sqlite3")
	} else if rest, ok := strings.CutPrefix(c.History.Path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.History.Path = filepath.Join(home, rest)
	}
	return nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > maxPrecision {
		return fmt.Errorf("%w: precision %d is not between 0 and %d", ErrInvalid, c.Precision, maxPrecision)
	}
	if c.System != "" {
		if _, ok := system.Parse(c.System); !ok {
			return fmt.Errorf("%w: unknown system %q", ErrInvalid, c.System)
		}
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("%w: history.path is required when history is enabled", ErrInvalid)
	}
	return nil
}

// Systems is the capability filter named by System, or system.All.
func (c *Config) Systems() system.Set {
	if s, ok := system.Parse(c.System); ok {
		return s
	}
	return system.All
}
