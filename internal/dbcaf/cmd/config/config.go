// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"

	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/cmd/utils"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

type PrintConfigImpl struct{}

func NewPrintConfigImpl() *PrintConfigImpl {
	return &PrintConfigImpl{}
}

func (i *PrintConfigImpl) PrintConfig(ctx context.Context, params api.PrintConfigParams) error {
	_, cfg, err := utils.LoadConfig(ctx, params.CommonParams)
	if err != nil {
		return err
	}
	return cfg.WriteYAML(params.Out)
}
