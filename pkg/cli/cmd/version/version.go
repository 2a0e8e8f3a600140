// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotin/kedro-dbc-airflow/internal/version"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/builder"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/constants"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Version,
		RunE: func(fg *builder.FlagGetter) error {
			v := version.Get()
			out := fg.Out()
			fmt.Fprintln(out, "Client:")
			fmt.Fprintf(out, "  Version:      %s\n", v.Version)
			fmt.Fprintf(out, "  Git Revision: %s\n", v.GitRevision)
			fmt.Fprintf(out, "  Build Time:   %s\n", v.BuildTime)
			fmt.Fprintf(out, "  Go Version:   %s %s/%s\n", v.GoVersion, v.GoOS, v.GoArch)
			return nil
		},
	}).Build()
}
