// Package config handles loading tree-shaker configuration from files.
//
// Configuration can be specified in a JSON file named treeshaker.json,
// .treeshakerrc or .treeshakerrc.json, or in a YAML file named
// treeshaker.yaml or treeshaker.yml. The config file is searched for in the
// current directory and parent directories.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/HugoDaniel/treeshaker/internal/shaker"
	"github.com/HugoDaniel/treeshaker/internal/timers"
)

// Config represents the configuration file structure.
// All fields are optional and will use default values if not specified.
type Config struct {
	// TreeShaking removes unused statements (default true)
	TreeShaking *bool `json:"treeShaking,omitempty" yaml:"treeShaking,omitempty"`

	// PureGlobals trusts the known JavaScript built-ins to be free of effects
	PureGlobals *bool `json:"pureGlobals,omitempty" yaml:"pureGlobals,omitempty"`

	// PropertyReadSideEffects treats reads of unknown members as effects (default true)
	PropertyReadSideEffects *bool `json:"propertyReadSideEffects,omitempty" yaml:"propertyReadSideEffects,omitempty"`

	// KeepComments keeps comments above surviving statements (default true)
	KeepComments *bool `json:"keepComments,omitempty" yaml:"keepComments,omitempty"`

	// Perf measures each phase and compares it with a stored baseline
	Perf *bool `json:"perf,omitempty" yaml:"perf,omitempty"`

	// KeepStatements lists 1-based lines whose statements are always kept
	KeepStatements []int `json:"keepStatements,omitempty" yaml:"keepStatements,omitempty"`
}

// ConfigFileNames are the names searched for config files, in order of preference.
var ConfigFileNames = []string{
	"treeshaker.json",
	".treeshakerrc",
	".treeshakerrc.json",
	"treeshaker.yaml",
	"treeshaker.yml",
}

// Load searches for a config file starting from the given directory
// and walking up to parent directories. Returns nil if no config file is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// ToOptions converts a Config to shaker.Options, using defaults for unset fields.
func (c *Config) ToOptions() shaker.Options {
	opts := shaker.DefaultOptions()

	if c.TreeShaking != nil {
		opts.TreeShaking = *c.TreeShaking
	}
	if c.PureGlobals != nil {
		opts.PureGlobals = *c.PureGlobals
	}
	if c.PropertyReadSideEffects != nil {
		opts.PropertyReadSideEffects = *c.PropertyReadSideEffects
	}
	if c.KeepComments != nil {
		opts.KeepComments = *c.KeepComments
	}
	if c.Perf != nil && *c.Perf {
		opts.Timers = timers.New(true)
	}
	if len(c.KeepStatements) > 0 {
		opts.KeepLines = c.KeepStatements
	}

	return opts
}

// MergeOptions holds the CLI flags that override config file options.
type MergeOptions struct {
	// CLI flags (nil means not specified on CLI)
	PureGlobals             *bool
	PropertyReadSideEffects *bool
	NoTreeShaking           bool
	NoComments              bool
	Perf                    bool
	KeepLines               []int
}

// Merge merges CLI options with config file options.
// CLI options override config file options when specified.
func (c *Config) Merge(cli MergeOptions) shaker.Options {
	opts := c.ToOptions()

	// CLI overrides
	if cli.PureGlobals != nil {
		opts.PureGlobals = *cli.PureGlobals
	}
	if cli.PropertyReadSideEffects != nil {
		opts.PropertyReadSideEffects = *cli.PropertyReadSideEffects
	}
	if cli.NoTreeShaking {
		opts.TreeShaking = false
	}
	if cli.NoComments {
		opts.KeepComments = false
	}
	if cli.Perf && opts.Timers == nil {
		opts.Timers = timers.New(true)
	}
	if len(cli.KeepLines) > 0 {
		// Append CLI lines to config lines
		opts.KeepLines = append(append([]int(nil), opts.KeepLines...), cli.KeepLines...)
	}

	return opts
}
