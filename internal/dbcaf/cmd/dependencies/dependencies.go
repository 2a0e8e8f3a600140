// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package dependencies

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/cmd/utils"
	"github.com/gotin/kedro-dbc-airflow/internal/graph"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Document is the printed form of a pipeline's dependency mapping.
type Document struct {
	Pipeline     string        `json:"pipeline"`
	Env          string        `json:"env"`
	Nodes        []string      `json:"nodes"`
	Dependencies []graph.Entry `json:"dependencies"`
}

type PrintDependenciesImpl struct{}

func NewPrintDependenciesImpl() *PrintDependenciesImpl {
	return &PrintDependenciesImpl{}
}

func (i *PrintDependenciesImpl) PrintDependencies(ctx context.Context, params api.PrintDependenciesParams) error {
	format := strings.ToLower(params.OutputFormat)
	if format == "" {
		format = OutputYAML
	}
	if format != OutputYAML && format != OutputJSON {
		return fmt.Errorf("unsupported output format %q: must be %s or %s", params.OutputFormat, OutputYAML, OutputJSON)
	}

	ctx, cfg, err := utils.LoadConfig(ctx, params.CommonParams)
	if err != nil {
		return err
	}
	pctx, err := utils.LoadProject(ctx, cfg)
	if err != nil {
		return err
	}
	p, err := utils.ResolvePipeline(pctx, cfg)
	if err != nil {
		return err
	}

	deps := graph.Invert(p)
	if err := deps.CheckReferences(p.NodeNames()); err != nil {
		return err
	}

	doc := Document{
		Pipeline:     cfg.Pipeline,
		Env:          cfg.Env,
		Nodes:        p.NodeNames(),
		Dependencies: deps.Entries(),
	}

	var out []byte
	switch format {
	case OutputJSON:
		out, err = json.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')
	default:
		out, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode dependencies: %w", err)
	}
	_, err = params.Out.Write(out)
	return err
}
