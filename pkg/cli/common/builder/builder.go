// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/constants"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/flags"
)

// CommandBuilder assembles a cobra command from its definition, flags and handlers.
type CommandBuilder struct {
	Command constants.Command
	Flags   []flags.Flag
	Args    cobra.PositionalArgs
	PreRunE func(cmd *cobra.Command, args []string) error
	RunE    func(fg *FlagGetter) error
}

func (b *CommandBuilder) Build() *cobra.Command {
	cmd := &cobra.Command{
		Use:     b.Command.Use,
		Aliases: b.Command.Aliases,
		Short:   b.Command.Short,
		Long:    b.Command.Long,
		Example: b.Command.Example,
		Args:    b.Args,
		PreRunE: b.PreRunE,
	}

	flags.AddFlags(cmd, b.Flags...)

	if b.RunE != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			return b.RunE(&FlagGetter{cmd: cmd, args: args})
		}
	}

	return cmd
}

// FlagGetter reads the flags and arguments of a running command.
type FlagGetter struct {
	cmd  *cobra.Command
	args []string
}

// NewFlagGetter wraps cmd and its positional args.
func NewFlagGetter(cmd *cobra.Command, args []string) *FlagGetter {
	return &FlagGetter{cmd: cmd, args: args}
}

// GetString returns the flag value, falling back to the flag's documented default when unset.
func (fg *FlagGetter) GetString(flag flags.Flag) string {
	val, _ := fg.cmd.Flags().GetString(flag.Name)
	if val == "" && !fg.cmd.Flags().Changed(flag.Name) {
		return flag.Default
	}
	return val
}

func (fg *FlagGetter) GetBool(flag flags.Flag) bool {
	val, _ := fg.cmd.Flags().GetBool(flag.Name)
	return val
}

func (fg *FlagGetter) GetStringArray(flag flags.Flag) []string {
	val, _ := fg.cmd.Flags().GetStringArray(flag.Name)
	return val
}

func (fg *FlagGetter) GetArgs() []string {
	return fg.args
}

// Flags returns every flag of the command, including inherited persistent flags.
func (fg *FlagGetter) Flags() *pflag.FlagSet {
	return fg.cmd.Flags()
}

// Context returns the command context.
func (fg *FlagGetter) Context() context.Context {
	if ctx := fg.cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Out returns the writer command output goes to.
func (fg *FlagGetter) Out() io.Writer {
	return fg.cmd.OutOrStdout()
}
