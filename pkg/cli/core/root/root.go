// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package root

import (
	"github.com/spf13/cobra"

	"github.com/gotin/kedro-dbc-airflow/pkg/cli/cmd/dbcaf"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/cmd/version"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/config"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/flags"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

// BuildRootCmd assembles the root command with all subcommands
func BuildRootCmd(config *config.CLIConfig, impl api.CommandImplementationInterface) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.Name,
		Short: config.ShortDescription,
		Long:  config.LongDescription,
	}

	flags.AddPersistentFlags(rootCmd,
		flags.ConfigFile,
		flags.LogLevel,
		flags.LogFormat,
	)

	rootCmd.AddCommand(
		dbcaf.NewDBCAFCmd(impl),
		version.NewVersionCmd(),
	)

	return rootCmd
}
