// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package dbcaf

import (
	"context"

	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/cmd/config"
	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/cmd/create"
	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/cmd/dependencies"
	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/cmd/sparkconf"
	"github.com/gotin/kedro-dbc-airflow/internal/sparkctx"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

type CommandImplementation struct {
	sessions *sparkctx.Registry
}

var _ api.CommandImplementationInterface = &CommandImplementation{}

func NewCommandImplementation() *CommandImplementation {
	return &CommandImplementation{sessions: sparkctx.NewRegistry()}
}

// DAG Operations

func (c *CommandImplementation) CreateDAG(ctx context.Context, params api.CreateDAGParams) error {
	return create.NewCreateDAGImpl().CreateDAG(ctx, params)
}

func (c *CommandImplementation) PrintDependencies(ctx context.Context, params api.PrintDependenciesParams) error {
	return dependencies.NewPrintDependenciesImpl().PrintDependencies(ctx, params)
}

// Spark Operations

func (c *CommandImplementation) PrintSparkConf(ctx context.Context, params api.SparkConfParams) error {
	return sparkconf.NewSparkConfImpl(c.sessions).PrintSparkConf(ctx, params)
}

// Config Operations

func (c *CommandImplementation) PrintConfig(ctx context.Context, params api.PrintConfigParams) error {
	return config.NewPrintConfigImpl().PrintConfig(ctx, params)
}
