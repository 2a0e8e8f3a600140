// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "context"

// CommandImplementationInterface combines all APIs
type CommandImplementationInterface interface {
	DAGAPI
	SparkAPI
	ConfigAPI
}

// DAGAPI defines DAG export operations
type DAGAPI interface {
	CreateDAG(ctx context.Context, params CreateDAGParams) error
	PrintDependencies(ctx context.Context, params PrintDependenciesParams) error
}

// SparkAPI defines Spark session operations
type SparkAPI interface {
	PrintSparkConf(ctx context.Context, params SparkConfParams) error
}

// ConfigAPI defines tool configuration operations
type ConfigAPI interface {
	PrintConfig(ctx context.Context, params PrintConfigParams) error
}
