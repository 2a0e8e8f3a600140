// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/messages"
)

type Flag struct {
	Name      string
	Shorthand string
	Usage     string
	Type      string
	// Default is only shown in help. Flags that feed the tool configuration must stay unset
	// unless given, so that file and environment values are not shadowed.
	Default string
}

var (
	Pipeline = Flag{
		Name:      "pipeline",
		Shorthand: "p",
		Usage:     messages.FlagPipelineDesc,
		Default:   "__default__",
	}

	Env = Flag{
		Name:      "env",
		Shorthand: "e",
		Usage:     messages.FlagEnvDesc,
		Default:   "local",
	}

	TargetDir = Flag{
		Name:      "target-dir",
		Shorthand: "t",
		Usage:     messages.FlagTargetDirDesc,
		Default:   "./airflow_dags/",
	}

	TemplateFile = Flag{
		Name:      "template-file",
		Shorthand: "j",
		Usage:     messages.FlagTemplateFileDesc,
		Default:   "dbc_af_dag_template.py.tmpl",
	}

	TemplateDir = Flag{
		Name:  "template-dir",
		Usage: messages.FlagTemplateDirDesc,
	}

	ProjectPath = Flag{
		Name:  "project-path",
		Usage: messages.FlagProjectPathDesc,
	}

	Tag = Flag{
		Name:  "tag",
		Usage: messages.FlagTagDesc,
		Type:  "stringArray",
	}

	Output = Flag{
		Name:      "output",
		Shorthand: "o", // Keep shorthand for output as it's a common convention
		Usage:     messages.FlagOutputDesc,
		Default:   "yaml",
	}

	Conf = Flag{
		Name:  "conf",
		Usage: messages.FlagConfDesc,
		Type:  "stringArray",
	}

	// Persistent flags of the root command

	ConfigFile = Flag{
		Name:  "config",
		Usage: messages.FlagConfigDesc,
	}

	LogLevel = Flag{
		Name:  "log-level",
		Usage: messages.FlagLogLevelDesc,
	}

	LogFormat = Flag{
		Name:  "log-format",
		Usage: messages.FlagLogFormatDesc,
	}
)

func AddFlags(cmd *cobra.Command, flags ...Flag) {
	for _, flag := range flags {
		register(cmd.Flags(), flag)
	}
}

func AddPersistentFlags(cmd *cobra.Command, flags ...Flag) {
	for _, flag := range flags {
		register(cmd.PersistentFlags(), flag)
	}
}

func register(fs *pflag.FlagSet, flag Flag) {
	switch flag.Type {
	case "bool":
		fs.BoolP(flag.Name, flag.Shorthand, false, flag.Usage)
	case "stringArray":
		fs.StringArrayP(flag.Name, flag.Shorthand, nil, flag.Usage)
	default:
		// Default to string type
		fs.StringP(flag.Name, flag.Shorthand, "", flag.Usage)
	}
	if flag.Default != "" {
		fs.Lookup(flag.Name).DefValue = flag.Default
	}
}
