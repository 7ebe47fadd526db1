// Package scanconfig loads the YAML configuration that drives the batch CLI
// subcommand: which files or glob patterns to scan, how many workers to run
// concurrently, and what recursion limit to pass down to interp.Parse.
package scanconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/haldor-security/log4scan/interp"
)

// Config is the batch scan configuration, loaded from a scanconfig.yaml in
// the directory passed to the batch subcommand's --directory flag.
type Config struct {
	// Globs are filepath.Match-style patterns (resolved relative to the
	// config file's directory) naming the files to scan, one line at a time.
	Globs []string `yaml:"globs"`

	// Workers bounds how many files are scanned concurrently. Zero means the
	// caller should pick a default.
	Workers int `yaml:"workers"`

	// RecursionLimit is passed straight through to interp.Parse for every
	// scanned line. Zero means the caller should fall back to interp.MaxRecursion.
	RecursionLimit uint64 `yaml:"recursion_limit"`
}

// LoadConfig reads scanconfig.yaml from dir and joins each relative pattern
// in Globs onto dir. The patterns are not expanded here; see Files.
func LoadConfig(dir string) (Config, error) {
	var cfg Config

	configFilename := filepath.Join(dir, "scanconfig.yaml")
	if _, err := os.Stat(configFilename); os.IsNotExist(err) {
		return Config{}, errors.New("no scanconfig.yaml found in " + dir)
	}

	raw, err := os.ReadFile(configFilename)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", configFilename, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", configFilename, err)
	}
	if len(cfg.Globs) == 0 {
		return Config{}, errors.New("scanconfig.yaml: globs must list at least one pattern")
	}

	cfg.resolveAgainst(dir)
	return cfg, nil
}

func (c *Config) resolveAgainst(dir string) {
	resolved := make([]string, len(c.Globs))
	for i, g := range c.Globs {
		if filepath.IsAbs(g) {
			resolved[i] = g
		} else {
			resolved[i] = filepath.Join(dir, g)
		}
	}
	c.Globs = resolved
}

// Files expands every glob pattern in the config into a sorted, deduplicated
// list of matching file paths.
func (c Config) Files() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range c.Globs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// EffectiveRecursionLimit returns RecursionLimit, or interp.MaxRecursion if
// the config left it unset.
func (c Config) EffectiveRecursionLimit() uint64 {
	if c.RecursionLimit == 0 {
		return interp.MaxRecursion
	}
	return c.RecursionLimit
}

// EffectiveWorkers returns Workers, or a small positive default if unset.
func (c Config) EffectiveWorkers() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}
