// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package create

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf/cmd/utils"
	"github.com/gotin/kedro-dbc-airflow/internal/graph"
	"github.com/gotin/kedro-dbc-airflow/internal/logging"
	"github.com/gotin/kedro-dbc-airflow/internal/renderer"
	"github.com/gotin/kedro-dbc-airflow/internal/sparkctx"
	"github.com/gotin/kedro-dbc-airflow/internal/staging"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/messages"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

// DAGFileSuffix is appended to the package name to form the DAG file name.
const DAGFileSuffix = "_dag.py"

type CreateDAGImpl struct{}

func NewCreateDAGImpl() *CreateDAGImpl {
	return &CreateDAGImpl{}
}

// CreateDAG renders the DAG of the configured pipeline and stages the project next to it.
// The pipeline is resolved before anything is written.
func (i *CreateDAGImpl) CreateDAG(ctx context.Context, params api.CreateDAGParams) error {
	ctx, cfg, err := utils.LoadConfig(ctx, params.CommonParams)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	pctx, err := utils.LoadProject(ctx, cfg)
	if err != nil {
		return err
	}
	p, err := utils.ResolvePipeline(pctx, cfg)
	if err != nil {
		return err
	}
	deps := graph.Invert(p)
	logger.Info("Resolved pipeline", "pipeline", cfg.Pipeline, "nodes", p.Len(), "edges", deps.Len())

	targetDir, err := filepath.Abs(cfg.TargetDir)
	if err != nil {
		return fmt.Errorf("failed to resolve target directory: %w", err)
	}

	md := pctx.Metadata
	stager, err := staging.New(staging.Options{
		ConfSource:    md.ConfDir(),
		PackageSource: md.PackageDir(),
		PackageName:   md.PackageName,
		TargetDir:     targetDir,
		Bootstrap:     sparkctx.Bootstrap(),
		BootstrapFile: sparkctx.BootstrapFile,
	})
	if err != nil {
		return err
	}
	layout := stager.Layout()

	dagPath := filepath.Join(targetDir, md.PackageName+DAGFileSuffix)
	engine := renderer.New(renderer.WithTemplateDir(cfg.TemplateDir))
	if err := engine.RenderToFile(cfg.TemplateFile, dagPath, renderer.RenderContext{
		DagName:      md.PackageName,
		PipelineName: cfg.Pipeline,
		Env:          cfg.Env,
		PackageName:  md.PackageName,
		ProjectPath:  layout.ProjectDir,
		ConfDir:      layout.ConfDir,
		TargetDir:    targetDir,
		Dependencies: deps,
		Pipeline:     p,
		DAG:          cfg.DAG,
	}); err != nil {
		return err
	}
	logger.Info("Rendered DAG", "path", dagPath, "template", cfg.TemplateFile)

	res, err := stager.Stage(ctx)
	if err != nil {
		return err
	}
	logger.Info("Staged project",
		"projectDir", res.ProjectDir,
		"packageDir", res.PackageDir,
		"confFiles", res.ConfFiles,
		"sourceFiles", res.SourceFiles)

	printGuidance(params.Out, dagPath, res)
	return nil
}

func printGuidance(w io.Writer, dagPath string, res *staging.Result) {
	r := lipgloss.NewRenderer(w)
	green := r.NewStyle().Foreground(lipgloss.Color("2"))
	yellow := r.NewStyle().Foreground(lipgloss.Color("3"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, green.Render(messages.DAGGeneratedIn))
	fmt.Fprintln(w, dagPath)
	fmt.Fprintln(w, yellow.Render(messages.DAGCopyHint))
	fmt.Fprintln(w, green.Render(messages.DAGCustomizeHint))
	fmt.Fprintln(w)
	fmt.Fprintln(w, green.Render(messages.StagedProjectIn))
	fmt.Fprintln(w, res.ProjectDir)
	fmt.Fprintln(w, res.PackageDir)
	fmt.Fprintln(w)
	fmt.Fprintln(w, yellow.Render(messages.DAGConfigDirHint))
	fmt.Fprintln(w)
	fmt.Fprintln(w, yellow.Render(messages.DAGCatalogHint))
	fmt.Fprintln(w, yellow.Render(messages.DAGAbsolutePathsHint))
	fmt.Fprintln(w)
}
