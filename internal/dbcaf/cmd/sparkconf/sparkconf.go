// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package sparkconf

import (
	"context"
	"fmt"
	"slices"

	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/cmd/utils"
	"github.com/gotin/kedro-dbc-airflow/internal/sparkctx"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

type SparkConfImpl struct {
	registry *sparkctx.Registry
}

// NewSparkConfImpl creates the command. Sessions are kept in registry, so repeated calls in one
// process reuse the same session.
func NewSparkConfImpl(registry *sparkctx.Registry) *SparkConfImpl {
	if registry == nil {
		registry = sparkctx.NewRegistry()
	}
	return &SparkConfImpl{registry: registry}
}

// PrintSparkConf builds the session the staged project would start and prints its
// configuration as sorted key=value lines.
func (i *SparkConfImpl) PrintSparkConf(ctx context.Context, params api.SparkConfParams) error {
	additional, err := sparkctx.ParseConf(params.Conf)
	if err != nil {
		return err
	}

	ctx, cfg, err := utils.LoadConfig(ctx, params.CommonParams)
	if err != nil {
		return err
	}
	pctx, err := utils.LoadProject(ctx, cfg)
	if err != nil {
		return err
	}

	session, err := sparkctx.NewContext(pctx, i.registry).InitSparkSession(ctx, additional)
	if err != nil {
		return err
	}

	conf := session.Conf()
	keys := make([]string, 0, len(conf))
	for k := range conf {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(params.Out, "%s=%s\n", k, conf[k]); err != nil {
			return err
		}
	}
	return nil
}
