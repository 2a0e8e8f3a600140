// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"fmt"
	"os"

	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/config"
	"github.com/gotin/kedro-dbc-airflow/internal/logging"
	"github.com/gotin/kedro-dbc-airflow/internal/pipeline"
	"github.com/gotin/kedro-dbc-airflow/internal/project"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

// LoadConfig resolves the tool configuration of a command and returns a context carrying the
// logger it configures.
func LoadConfig(ctx context.Context, params api.CommonParams) (context.Context, *config.Config, error) {
	cfg, err := config.Load(params.ConfigFile, params.Flags, logging.FromContext(ctx))
	if err != nil {
		return ctx, nil, err
	}
	logger := logging.New(cfg.Logging.ToLoggingConfig())
	return logging.NewContext(ctx, logger), cfg, nil
}

// LoadProject locates the project and loads its context for the configured environment.
func LoadProject(ctx context.Context, cfg *config.Config) (*project.Context, error) {
	root := cfg.ProjectPath
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		if root, err = project.FindProjectRoot(wd); err != nil {
			return nil, err
		}
	}

	md, err := project.LoadMetadata(root)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("Loaded project",
		"name", md.ProjectName,
		"package", md.PackageName,
		"path", md.ProjectPath,
		"env", cfg.Env)

	return project.NewSession(md, cfg.Env).LoadContext(ctx)
}

// ResolvePipeline returns the configured pipeline, restricted to the configured tags.
func ResolvePipeline(pctx *project.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	p, err := pctx.Pipeline(cfg.Pipeline)
	if err != nil {
		return nil, err
	}
	if len(cfg.Tags) == 0 {
		return p, nil
	}
	filtered, err := p.FilterByTags(cfg.Tags...)
	if err != nil {
		return nil, err
	}
	if filtered.Len() == 0 {
		return nil, fmt.Errorf("no node of pipeline %q carries any of the tags %v", cfg.Pipeline, cfg.Tags)
	}
	return filtered, nil
}
