// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	coreconfig "github.com/gotin/kedro-dbc-airflow/internal/config"
	"github.com/gotin/kedro-dbc-airflow/internal/renderer"
	"github.com/gotin/kedro-dbc-airflow/internal/sparkctx"
)

const maxRetries = 100

func validateDAG(path *coreconfig.Path, dag *renderer.DAGSettings) coreconfig.ValidationErrors {
	var errs coreconfig.ValidationErrors

	if err := coreconfig.MustNotBeEmpty(path.Child("owner"), dag.Owner); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.Parse(renderer.StartDateLayout, dag.StartDate); err != nil {
		errs = append(errs, coreconfig.Invalid(path.Child("start_date"), "must be a YYYY-MM-DD date"))
	}
	if err := coreconfig.MustBeInRange(path.Child("retries"), dag.Retries, 0, maxRetries); err != nil {
		errs = append(errs, err)
	}
	if err := coreconfig.MustBeNonNegative(path.Child("retry_delay"), dag.RetryDelay); err != nil {
		errs = append(errs, err)
	}

	for i, pair := range dag.SparkConf {
		if _, err := sparkctx.ParseConf([]string{pair}); err != nil {
			errs = append(errs, coreconfig.Invalid(path.Child("spark_conf").Index(i), "must be a key=value pair"))
		}
	}

	return errs
}
