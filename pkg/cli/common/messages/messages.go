// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package messages

const (
	DefaultCLIName             = "kedro-dbcaf"
	DefaultCLIShortDescription = "Export Kedro pipelines as Airflow DAGs running on Databricks-connect"
	DefaultCLILongDescription  = `kedro-dbcaf exports a pipeline declared in a Kedro project as an Airflow DAG that runs
every node through Databricks-connect, and stages the project configuration and sources
next to the DAG so Airflow workers can import them.`

	// Flag descriptions
	FlagPipelineDesc     = "Name of the registered pipeline to export"
	FlagEnvDesc          = "Kedro configuration environment layered over base"
	FlagTargetDirDesc    = "Directory the DAG file and staged artifacts are written to"
	FlagTemplateFileDesc = "DAG template file name, or an absolute path to a template"
	FlagTemplateDirDesc  = "Directory searched for the template before the bundled templates"
	FlagProjectPathDesc  = "Kedro project root (default: searched upward from the working directory)"
	FlagTagDesc          = "Only export nodes carrying this tag (repeatable)"
	FlagConfigDesc       = "Path to a kedro-dbcaf YAML config file"
	FlagLogLevelDesc     = "Log level: debug, info, warn or error"
	FlagLogFormatDesc    = "Log format: text or json"
	FlagOutputDesc       = "Output format: yaml or json"
	FlagConfDesc         = "Additional session configuration as key=value (repeatable)"

	// Guidance printed after a DAG is created
	DAGGeneratedIn       = "An Airflow DAG has been generated in:"
	DAGCopyHint          = "This file should be copied to your Airflow DAG folder."
	DAGCustomizeHint     = "The Airflow configuration can be customized by editing this file."
	DAGConfigDirHint     = "This file also contains the path to the config directory, this directory will need to be available to Airflow and any workers."
	DAGCatalogHint       = "Additionally all data sets must have an entry in the data catalog."
	DAGAbsolutePathsHint = "And all local paths in both the data catalog and log config must be absolute paths."
	StagedProjectIn      = "Project configuration and sources were staged in:"
)
