// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package dbcaf

import (
	"context"
	"testing"

	"github.com/gotin/kedro-dbc-airflow/pkg/cli/types/api"
)

type recordingImpl struct {
	create       *api.CreateDAGParams
	dependencies *api.PrintDependenciesParams
	sparkConf    *api.SparkConfParams
	config       *api.PrintConfigParams
}

func (r *recordingImpl) CreateDAG(_ context.Context, p api.CreateDAGParams) error {
	r.create = &p
	return nil
}

func (r *recordingImpl) PrintDependencies(_ context.Context, p api.PrintDependenciesParams) error {
	r.dependencies = &p
	return nil
}

func (r *recordingImpl) PrintSparkConf(_ context.Context, p api.SparkConfParams) error {
	r.sparkConf = &p
	return nil
}

func (r *recordingImpl) PrintConfig(_ context.Context, p api.PrintConfigParams) error {
	r.config = &p
	return nil
}

func TestNewDBCAFCmd(t *testing.T) {
	cmd := NewDBCAFCmd(&recordingImpl{})

	if cmd.Use != "dbcaf" {
		t.Errorf("expected Use to be 'dbcaf', got %q", cmd.Use)
	}

	for _, name := range []string{"create", "dependencies", "deps", "spark-conf", "config"} {
		if _, _, err := cmd.Find([]string{name}); err != nil {
			t.Errorf("expected %q subcommand to exist: %v", name, err)
		}
	}
}

func TestCreateCmd_Flags(t *testing.T) {
	cmd := NewDBCAFCmd(&recordingImpl{})
	createCmd, _, err := cmd.Find([]string{"create"})
	if err != nil {
		t.Fatalf("expected 'create' subcommand to exist: %v", err)
	}

	shorthands := map[string]string{
		"pipeline":      "p",
		"env":           "e",
		"target-dir":    "t",
		"template-file": "j",
	}
	for name, short := range shorthands {
		f := createCmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("expected --%s flag", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("expected --%s shorthand %q, got %q", name, short, f.Shorthand)
		}
		if f.Value.String() != "" {
			t.Errorf("expected --%s to be unset by default, got %q", name, f.Value.String())
		}
	}

	if got := createCmd.Flags().Lookup("pipeline").DefValue; got != "__default__" {
		t.Errorf("expected pipeline help default '__default__', got %q", got)
	}
	if createCmd.Flags().Lookup("output") != nil {
		t.Error("create should not have an --output flag")
	}
}

func TestCreateCmd_PassesFlags(t *testing.T) {
	impl := &recordingImpl{}
	cmd := NewDBCAFCmd(impl)
	cmd.SetArgs([]string{"create", "-p", "data_science", "-e", "prod", "--tag", "nightly"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if impl.create == nil {
		t.Fatal("expected CreateDAG to be called")
	}

	fs := impl.create.Flags
	if !fs.Changed("pipeline") || !fs.Changed("env") || !fs.Changed("tag") {
		t.Error("expected pipeline, env and tag to be marked as changed")
	}
	if fs.Changed("target-dir") {
		t.Error("target-dir was not given and must stay unchanged")
	}
	if impl.create.Out == nil {
		t.Error("expected an output writer")
	}
}

func TestCreateCmd_RejectsArgs(t *testing.T) {
	impl := &recordingImpl{}
	cmd := NewDBCAFCmd(impl)
	cmd.SetArgs([]string{"create", "extra"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for a positional argument")
	}
	if impl.create != nil {
		t.Error("CreateDAG must not run when arguments are rejected")
	}
}

func TestDependenciesCmd_OutputDefault(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"deps"}, want: "yaml"},
		{args: []string{"dependencies", "-o", "json"}, want: "json"},
	}
	for _, tt := range tests {
		impl := &recordingImpl{}
		cmd := NewDBCAFCmd(impl)
		cmd.SetArgs(tt.args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: unexpected error: %v", tt.args, err)
		}
		if impl.dependencies == nil {
			t.Fatalf("%v: expected PrintDependencies to be called", tt.args)
		}
		if impl.dependencies.OutputFormat != tt.want {
			t.Errorf("%v: expected output %q, got %q", tt.args, tt.want, impl.dependencies.OutputFormat)
		}
	}
}

func TestSparkConfCmd_CollectsConf(t *testing.T) {
	impl := &recordingImpl{}
	cmd := NewDBCAFCmd(impl)
	cmd.SetArgs([]string{"spark-conf", "--conf", "spark.master=local", "--conf", "a=b,c"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if impl.sparkConf == nil {
		t.Fatal("expected PrintSparkConf to be called")
	}
	want := []string{"spark.master=local", "a=b,c"}
	if len(impl.sparkConf.Conf) != len(want) {
		t.Fatalf("expected %v, got %v", want, impl.sparkConf.Conf)
	}
	for i := range want {
		if impl.sparkConf.Conf[i] != want[i] {
			t.Errorf("conf[%d]: expected %q, got %q", i, want[i], impl.sparkConf.Conf[i])
		}
	}
}
