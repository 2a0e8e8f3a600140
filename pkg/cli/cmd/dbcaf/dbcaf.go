// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package dbcaf

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/builder"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/constants"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/flags"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

func NewDBCAFCmd(impl api.CommandImplementationInterface) *cobra.Command {
	dbcafCmd := &cobra.Command{
		Use:   constants.DBCAF.Use,
		Short: constants.DBCAF.Short,
		Long:  constants.DBCAF.Long,
	}

	dbcafCmd.AddCommand(
		newCreateCmd(impl),
		newDependenciesCmd(impl),
		newSparkConfCmd(impl),
		newConfigCmd(impl),
	)

	return dbcafCmd
}

// projectFlags select the project, environment and pipeline a command works on.
var projectFlags = []flags.Flag{
	flags.ProjectPath,
	flags.Pipeline,
	flags.Env,
	flags.Tag,
}

// outputFlags select where and how a DAG is written.
var outputFlags = []flags.Flag{
	flags.TargetDir,
	flags.TemplateFile,
	flags.TemplateDir,
}

func commonParams(fg *builder.FlagGetter) api.CommonParams {
	return api.CommonParams{
		ConfigFile: fg.GetString(flags.ConfigFile),
		Flags:      fg.Flags(),
		Out:        fg.Out(),
	}
}

func newCreateCmd(impl api.CommandImplementationInterface) *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.DBCAFCreate,
		Flags:   slices.Concat(projectFlags, outputFlags, []flags.Flag{flags.Conf}),
		Args:    cobra.NoArgs,
		RunE: func(fg *builder.FlagGetter) error {
			return impl.CreateDAG(fg.Context(), api.CreateDAGParams{
				CommonParams: commonParams(fg),
			})
		},
	}).Build()
}

func newDependenciesCmd(impl api.CommandImplementationInterface) *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.DBCAFDependencies,
		Flags:   slices.Concat(projectFlags, []flags.Flag{flags.Output}),
		Args:    cobra.NoArgs,
		RunE: func(fg *builder.FlagGetter) error {
			return impl.PrintDependencies(fg.Context(), api.PrintDependenciesParams{
				CommonParams: commonParams(fg),
				OutputFormat: fg.GetString(flags.Output),
			})
		},
	}).Build()
}

func newSparkConfCmd(impl api.CommandImplementationInterface) *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.DBCAFSparkConf,
		Flags:   []flags.Flag{flags.ProjectPath, flags.Env, flags.Conf},
		Args:    cobra.NoArgs,
		RunE: func(fg *builder.FlagGetter) error {
			return impl.PrintSparkConf(fg.Context(), api.SparkConfParams{
				CommonParams: commonParams(fg),
				Conf:         fg.GetStringArray(flags.Conf),
			})
		},
	}).Build()
}

func newConfigCmd(impl api.CommandImplementationInterface) *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.DBCAFConfig,
		Flags:   slices.Concat(projectFlags, outputFlags),
		Args:    cobra.NoArgs,
		RunE: func(fg *builder.FlagGetter) error {
			return impl.PrintConfig(fg.Context(), api.PrintConfigParams{
				CommonParams: commonParams(fg),
			})
		},
	}).Build()
}
