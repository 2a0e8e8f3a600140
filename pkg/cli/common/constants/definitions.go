// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package constants

import (
	"fmt"

	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/messages"
)

type Command struct {
	Use     string
	Aliases []string
	Short   string
	Long    string
	Example string
}

var (
	Version = Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information.",
	}

	DBCAF = Command{
		Use:   "dbcaf",
		Short: "Run a Kedro project with Databricks-connect and Airflow",
		Long:  "Commands that export a Kedro project for Airflow workers running Databricks-connect.",
	}

	DBCAFCreate = Command{
		Use:   "create",
		Short: "Create an Airflow DAG for a project",
		Long: `Create an Airflow DAG for a project.

The DAG declares one task per pipeline node and one dependency per parent/child pair.
The project configuration is staged in <target-dir>/kedro_conf/<package> and the
source package in <target-dir>/<package>, with its context.py replaced by one that
starts a Databricks-connect Spark session. Each task starts that session with the
--conf pairs (or dag.spark_conf) before running its node.`,
		Example: fmt.Sprintf(`  # Export the default pipeline for the local environment
  %[1]s dbcaf create

  # Export a named pipeline for production into the Airflow DAG folder
  %[1]s dbcaf create -p data_science -e prod -t /opt/airflow/dags

  # Use a custom template
  %[1]s dbcaf create --template-dir ./templates -j my_dag.py.tmpl

  # Point every task at a Databricks workspace
  %[1]s dbcaf create --conf spark.master=sc://workspace --conf spark.databricks.service.port=8787`, messages.DefaultCLIName),
	}

	DBCAFDependencies = Command{
		Use:     "dependencies",
		Aliases: []string{"deps"},
		Short:   "Print the task dependencies of a pipeline",
		Long:    "Print, for each node, the nodes that run after it in the generated DAG.",
		Example: fmt.Sprintf(`  # Print the dependencies of the default pipeline as YAML
  %[1]s dbcaf dependencies

  # Print the dependencies of a pipeline as JSON
  %[1]s dbcaf dependencies -p data_science -o json`, messages.DefaultCLIName),
	}

	DBCAFSparkConf = Command{
		Use:   "spark-conf",
		Short: "Print the Spark session configuration of an environment",
		Long:  "Print the Spark configuration the staged context.py starts its session with.",
		Example: fmt.Sprintf(`  # Print the merged spark*.yml configuration of the prod environment
  %[1]s dbcaf spark-conf -e prod

  # Overlay additional keys
  %[1]s dbcaf spark-conf --conf spark.master=local[2] --conf spark.sql.shuffle.partitions=4`, messages.DefaultCLIName),
	}

	DBCAFConfig = Command{
		Use:   "config",
		Short: "Print the resolved kedro-dbcaf configuration",
		Long:  "Print the kedro-dbcaf configuration after applying the config file, environment variables and flags.",
	}
)
