// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"context"
	"fmt"

	"github.com/gotin/kedro-dbc-airflow/internal/logging"
	"github.com/gotin/kedro-dbc-airflow/internal/pipeline"
)

// DefaultEnv is the environment used when none is given.
const DefaultEnv = "local"

// Session binds a project to a configuration environment for one run.
type Session struct {
	Metadata *Metadata
	Env      string
}

// NewSession creates a session for the project. An empty env selects DefaultEnv.
func NewSession(md *Metadata, env string) *Session {
	if env == "" {
		env = DefaultEnv
	}
	return &Session{Metadata: md, Env: env}
}

// Context is the loaded state of a project for one environment.
type Context struct {
	Metadata     *Metadata
	Env          string
	Pipelines    *pipeline.Registry
	ConfigLoader *ConfigLoader
}

// LoadContext reads the pipeline registry and prepares the configuration loader.
func (s *Session) LoadContext(ctx context.Context) (*Context, error) {
	logger := logging.FromContext(ctx)

	registryPath, err := s.Metadata.PipelinesFile()
	if err != nil {
		return nil, err
	}
	logger.Debug("Loading pipeline registry", "path", registryPath)

	registry, err := pipeline.LoadRegistryFile(registryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipelines of %s: %w", s.Metadata.ProjectName, err)
	}
	logger.Debug("Loaded pipelines", "names", registry.Names())

	return &Context{
		Metadata:     s.Metadata,
		Env:          s.Env,
		Pipelines:    registry,
		ConfigLoader: NewConfigLoader(s.Metadata.ConfDir(), s.Env),
	}, nil
}

// Pipeline returns the named pipeline of the project.
func (c *Context) Pipeline(name string) (*pipeline.Pipeline, error) {
	if name == "" {
		name = pipeline.DefaultPipelineName
	}
	return c.Pipelines.Get(name)
}
