// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package renderer

import (
	"fmt"
	"time"

	"github.com/gotin/kedro-dbc-airflow/internal/graph"
	"github.com/gotin/kedro-dbc-airflow/internal/pipeline"
	"github.com/gotin/kedro-dbc-airflow/internal/sparkctx"
)

// StartDateLayout is the accepted format of DAGSettings.StartDate.
const StartDateLayout = "2006-01-02"

// DAGSettings holds the DAG-level metadata written into the workflow definition.
type DAGSettings struct {
	Owner      string        `koanf:"owner" yaml:"owner"`
	Schedule   string        `koanf:"schedule" yaml:"schedule"`
	StartDate  string        `koanf:"start_date" yaml:"start_date"`
	Retries    int           `koanf:"retries" yaml:"retries"`
	RetryDelay time.Duration `koanf:"retry_delay" yaml:"retry_delay"`
	Catchup    bool          `koanf:"catchup" yaml:"catchup"`

	// SparkConf holds key=value pairs passed to the staged context's init_spark_session before
	// each node runs.
	SparkConf []string `koanf:"spark_conf" yaml:"spark_conf,omitempty"`
}

// DefaultDAGSettings returns the settings used when none are configured.
func DefaultDAGSettings() DAGSettings {
	return DAGSettings{
		Owner:      "airflow",
		Schedule:   "@once",
		StartDate:  "2021-01-01",
		Retries:    1,
		RetryDelay: 5 * time.Minute,
	}
}

// StartDateExpr returns StartDate as a Python datetime constructor call.
func (s DAGSettings) StartDateExpr() (string, error) {
	t, err := time.Parse(StartDateLayout, s.StartDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", s.StartDate, err)
	}
	return fmt.Sprintf("datetime(%d, %d, %d)", t.Year(), int(t.Month()), t.Day()), nil
}

// RetryDelaySeconds returns RetryDelay in whole seconds.
func (s DAGSettings) RetryDelaySeconds() int64 {
	return int64(s.RetryDelay / time.Second)
}

// SparkConfMap parses SparkConf. Later pairs win.
func (s DAGSettings) SparkConfMap() (map[string]string, error) {
	return sparkctx.ParseConf(s.SparkConf)
}

// CatchupExpr returns Catchup as a Python literal.
func (s DAGSettings) CatchupExpr() string {
	if s.Catchup {
		return "True"
	}
	return "False"
}

// RenderContext is the data a DAG template is executed with.
type RenderContext struct {
	DagName      string
	PipelineName string
	Env          string
	PackageName  string

	// ProjectPath is the staged project root the scheduler's workers run the pipeline from.
	ProjectPath string
	// ConfDir is the staged configuration directory.
	ConfDir string
	// TargetDir is the directory holding the DAG file and the staged package.
	TargetDir string

	Dependencies *graph.DependencyMapping
	Pipeline     *pipeline.Pipeline
	DAG          DAGSettings
}

// Validate checks that every node of the pipeline gets its own task id.
func (rc *RenderContext) Validate() error {
	if rc == nil || rc.Pipeline == nil {
		return nil
	}
	if err := CheckTaskIDs(rc.Pipeline.NodeNames()); err != nil {
		return fmt.Errorf("pipeline %q: %w", rc.PipelineName, err)
	}
	return nil
}
