// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryYAML = `
pipelines:
  data_engineering:
    nodes:
      - name: preprocess
        func: nodes.preprocess
        inputs: [companies]
        outputs: [preprocessed_companies]
  data_science:
    nodes:
      - name: train
        func: nodes.train
        inputs: [preprocessed_companies, "params:model_options"]
        outputs: [regressor]
        tags: [ml]
`

const registryHCL = `
pipeline "data_engineering" {
  node "preprocess" {
    func    = "nodes.preprocess"
    inputs  = ["companies"]
    outputs = ["preprocessed_companies"]
  }
}

pipeline "__default__" {
  include = ["data_engineering"]

  node "report" {
    inputs = ["preprocessed_companies"]
  }
}
`

func TestParseDefinitions_YAML(t *testing.T) {
	defs, err := ParseDefinitions("pipelines.yml", []byte(registryYAML))
	require.NoError(t, err)

	require.Len(t, defs, 2)
	require.Len(t, defs["data_science"].Nodes, 1)
	node := defs["data_science"].Nodes[0]
	assert.Equal(t, "train", node.Name)
	assert.Equal(t, []string{"preprocessed_companies", "params:model_options"}, node.Inputs)
	assert.Equal(t, []string{"ml"}, node.Tags)
}

func TestParseDefinitions_HCL(t *testing.T) {
	defs, err := ParseDefinitions("pipelines.hcl", []byte(registryHCL))
	require.NoError(t, err)

	require.Len(t, defs, 2)
	assert.Equal(t, []string{"data_engineering"}, defs[DefaultPipelineName].Include)
	require.Len(t, defs["data_engineering"].Nodes, 1)
	assert.Equal(t, "nodes.preprocess", defs["data_engineering"].Nodes[0].Func)
}

func TestParseDefinitions_Invalid(t *testing.T) {
	_, err := ParseDefinitions("pipelines.yml", []byte("pipelines: [not, a, map]"))
	require.Error(t, err)

	_, err = ParseDefinitions("pipelines.hcl", []byte(`pipeline "x" {`))
	require.Error(t, err)
}

func TestBuildRegistry_DefaultIsUnionWhenMissing(t *testing.T) {
	defs, err := ParseDefinitions("pipelines.yml", []byte(registryYAML))
	require.NoError(t, err)

	reg, err := BuildRegistry(defs)
	require.NoError(t, err)

	assert.Equal(t, []string{DefaultPipelineName, "data_engineering", "data_science"}, reg.Names())
	def, err := reg.Get(DefaultPipelineName)
	require.NoError(t, err)
	assert.Equal(t, []string{"preprocess", "train"}, def.NodeNames())
	assert.Equal(t, []string{"preprocess"}, def.ParentsOf("train"))
}

func TestBuildRegistry_Include(t *testing.T) {
	defs, err := ParseDefinitions("pipelines.hcl", []byte(registryHCL))
	require.NoError(t, err)

	reg, err := BuildRegistry(defs)
	require.NoError(t, err)

	def, err := reg.Get(DefaultPipelineName)
	require.NoError(t, err)
	assert.Equal(t, []string{"preprocess", "report"}, def.NodeNames())
	assert.Equal(t, []string{"preprocess"}, def.ParentsOf("report"))
}

func TestBuildRegistry_DependsOnIncludedNode(t *testing.T) {
	reg, err := BuildRegistry(map[string]Definition{
		"ingest": {Nodes: []*Node{{Name: "load", Outputs: []string{"raw"}}}},
		"report": {
			Include: []string{"ingest"},
			Nodes:   []*Node{{Name: "publish", DependsOn: []string{"load"}}},
		},
	})
	require.NoError(t, err)

	p, err := reg.Get("report")
	require.NoError(t, err)
	assert.Equal(t, []string{"load", "publish"}, p.NodeNames())
	assert.Equal(t, []string{"load"}, p.ParentsOf("publish"))
}

func TestBuildRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		defs    map[string]Definition
		wantErr string
	}{
		{
			name: "include cycle",
			defs: map[string]Definition{
				"a": {Include: []string{"b"}},
				"b": {Include: []string{"a"}},
			},
			wantErr: "pipeline include cycle",
		},
		{
			name:    "unknown include",
			defs:    map[string]Definition{"a": {Include: []string{"missing"}}},
			wantErr: `pipeline not found: "missing"`,
		},
		{
			name:    "invalid nodes",
			defs:    map[string]Definition{"a": {Nodes: []*Node{{Name: "x"}, {Name: "x"}}}},
			wantErr: `invalid pipeline "a"`,
		},
		{
			name: "depends on a node of another pipeline that is not included",
			defs: map[string]Definition{
				"ingest": {Nodes: []*Node{{Name: "load"}}},
				"report": {Nodes: []*Node{{Name: "publish", DependsOn: []string{"load"}}}},
			},
			wantErr: `node "publish" depends on unknown node "load"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRegistry(tt.defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg, err := BuildRegistry(map[string]Definition{})
	require.NoError(t, err)

	_, err = reg.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPipelineNotFound))
}

func TestLoadRegistryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipelines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registryYAML), 0o600))

	reg, err := LoadRegistryFile(path)
	require.NoError(t, err)
	p, err := reg.Get("data_engineering")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())

	_, err = LoadRegistryFile(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
}
