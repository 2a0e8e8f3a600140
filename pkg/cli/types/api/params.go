// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"io"

	"github.com/spf13/pflag"
)

// CommonParams carries what every kedro-dbcaf command needs to resolve its configuration
type CommonParams struct {
	// ConfigFile is the optional kedro-dbcaf YAML config file
	ConfigFile string
	// Flags are the command's flags; explicitly set ones override the configuration
	Flags *pflag.FlagSet
	// Out receives the command output
	Out io.Writer
}

// CreateDAGParams defines parameters for creating a DAG
type CreateDAGParams struct {
	CommonParams
}

// PrintDependenciesParams defines parameters for printing a dependency mapping
type PrintDependenciesParams struct {
	CommonParams
	OutputFormat string // yaml or json
}

// SparkConfParams defines parameters for printing the Spark session configuration
type SparkConfParams struct {
	CommonParams
	Conf []string // key=value overlays
}

// PrintConfigParams defines parameters for printing the resolved configuration
type PrintConfigParams struct {
	CommonParams
}
