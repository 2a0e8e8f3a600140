// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// BaseEnv is the environment every other environment is layered on.
const BaseEnv = "base"

// keyDelim separates nested keys. Configuration keys such as spark.sql.shuffle.partitions
// contain dots, so the default "." cannot be used.
const keyDelim = "::"

// ErrMissingConfig is returned when no configuration file matches the requested patterns.
var ErrMissingConfig = errors.New("no config files found")

var configExtensions = []string{".yml", ".yaml"}

// ConfigLoader reads configuration from <conf>/base overlaid with <conf>/<env>.
type ConfigLoader struct {
	confRoot string
	env      string
}

// NewConfigLoader creates a loader for the given configuration root and environment.
func NewConfigLoader(confRoot, env string) *ConfigLoader {
	return &ConfigLoader{confRoot: confRoot, env: env}
}

// ConfPaths returns the directories searched, lowest precedence first.
func (l *ConfigLoader) ConfPaths() []string {
	paths := []string{filepath.Join(l.confRoot, BaseEnv)}
	if l.env != "" && l.env != BaseEnv {
		paths = append(paths, filepath.Join(l.confRoot, l.env))
	}
	return paths
}

// Get loads every YAML file whose path relative to an environment directory matches one of the
// doublestar patterns, e.g. "spark*" or "spark*/**". A top-level key defined by an environment
// replaces the same key of base as a whole; nested maps are not merged. Two files of the same
// environment defining the same top-level key is an error.
func (l *ConfigLoader) Get(patterns ...string) (map[string]any, error) {
	merged := make(map[string]any)
	found := 0

	for _, dir := range l.ConfPaths() {
		files, err := lookup(dir, patterns)
		if err != nil {
			return nil, err
		}
		owners := make(map[string]string)
		for _, path := range files {
			fk := koanf.New(keyDelim)
			if err := fk.Load(file.Provider(path), koanfyaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
			for key, value := range fk.Raw() {
				if prev, dup := owners[key]; dup {
					return nil, fmt.Errorf("duplicate key %q found in %s and %s", key, prev, path)
				}
				owners[key] = path
				merged[key] = value
			}
			found++
		}
	}

	if found == 0 {
		return nil, fmt.Errorf("%w in %s matching %s", ErrMissingConfig,
			strings.Join(l.ConfPaths(), ", "), strings.Join(patterns, ", "))
	}
	return merged, nil
}

// lookup returns the config files under dir matching any pattern, in lexical order.
// A missing dir yields no files.
func lookup(dir string, patterns []string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	var matches []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasConfigExtension(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("invalid config pattern %q: %w", pattern, err)
			}
			if ok {
				matches = append(matches, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func hasConfigExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range configExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
