// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/config"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/core/root"
)

func main() {
	cfg := config.DefaultConfig()
	commandImpl := dbcaf.NewCommandImplementation()

	rootCmd := root.BuildRootCmd(cfg, commandImpl)
	rootCmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
