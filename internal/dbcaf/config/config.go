// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package config holds the kedro-dbcaf tool configuration.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/spf13/pflag"
	"github.com/stoewer/go-strcase"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/gotin/kedro-dbc-airflow/internal/config"
	"github.com/gotin/kedro-dbc-airflow/internal/pipeline"
	"github.com/gotin/kedro-dbc-airflow/internal/project"
	"github.com/gotin/kedro-dbc-airflow/internal/renderer"
)

// EnvPrefix is the prefix of environment variables read by the tool.
// Example: KEDRO_DBCAF__DAG__OWNER=data-eng
const EnvPrefix = "KEDRO_DBCAF"

// DefaultTargetDir is where DAGs and staged artifacts are written when no target is given.
const DefaultTargetDir = "./airflow_dags/"

// FlagMappings maps command-line flag names to configuration keys. Flags not renamed map to the
// snake_case form of their name.
var FlagMappings = flagMappings(
	[]string{"project-path", "pipeline", "env", "target-dir", "template-file", "template-dir"},
	map[string]string{
		"tag":        "tags",
		"conf":       "dag.spark_conf",
		"log-level":  "logging.level",
		"log-format": "logging.format",
	},
)

func flagMappings(names []string, renamed map[string]string) map[string]string {
	mappings := maps.Clone(renamed)
	for _, name := range names {
		mappings[name] = strcase.SnakeCase(name)
	}
	return mappings
}

// Config is the resolved configuration of one kedro-dbcaf invocation.
type Config struct {
	// ProjectPath is the project root. Empty means: search upward from the working directory.
	ProjectPath string `koanf:"project_path" yaml:"project_path"`
	// Pipeline is the registry name of the pipeline to export.
	Pipeline string `koanf:"pipeline" yaml:"pipeline"`
	// Env is the configuration environment layered over base.
	Env string `koanf:"env" yaml:"env"`
	// Tags restricts the pipeline to nodes carrying any of them.
	Tags []string `koanf:"tags" yaml:"tags,omitempty"`
	// TargetDir receives the DAG file and the staged artifacts.
	TargetDir string `koanf:"target_dir" yaml:"target_dir"`
	// TemplateFile names the DAG template.
	TemplateFile string `koanf:"template_file" yaml:"template_file"`
	// TemplateDir is searched for TemplateFile before the bundled templates.
	TemplateDir string `koanf:"template_dir" yaml:"template_dir,omitempty"`

	DAG     renderer.DAGSettings `koanf:"dag" yaml:"dag"`
	Logging LoggingConfig        `koanf:"logging" yaml:"logging"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Pipeline:     pipeline.DefaultPipelineName,
		Env:          project.DefaultEnv,
		TargetDir:    DefaultTargetDir,
		TemplateFile: renderer.DefaultTemplate,
		DAG:          renderer.DefaultDAGSettings(),
		Logging:      LoggingDefaults(),
	}
}

// Load resolves the configuration from defaults, the optional YAML file at configPath, the
// environment and the explicitly set flags of fs, in increasing order of precedence.
func Load(configPath string, fs *pflag.FlagSet, logger *slog.Logger) (*Config, error) {
	loader := coreconfig.NewLoader(EnvPrefix, coreconfig.WithLogger(logger))

	if err := loader.LoadWithDefaults(Defaults(), configPath); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if fs != nil {
		if err := loader.LoadFlags(fs, FlagMappings); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var cfg Config
	if err := loader.UnmarshalAndValidate("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs coreconfig.ValidationErrors

	for _, f := range []struct{ key, value string }{
		{"pipeline", c.Pipeline},
		{"env", c.Env},
		{"target_dir", c.TargetDir},
		{"template_file", c.TemplateFile},
	} {
		if f.value == "" {
			errs = append(errs, coreconfig.Required(coreconfig.NewPath(f.key)))
		}
	}
	for i, tag := range c.Tags {
		if err := coreconfig.MustNotBeEmpty(coreconfig.NewPath("tags").Index(i), tag); err != nil {
			errs = append(errs, err)
		}
	}

	errs = append(errs, validateDAG(coreconfig.NewPath("dag"), &c.DAG)...)
	errs = append(errs, c.Logging.Validate(coreconfig.NewPath("logging"))...)

	return errs.OrNil()
}

// WriteYAML writes the configuration as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
