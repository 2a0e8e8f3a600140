// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesParentsFromDatasets(t *testing.T) {
	p, err := New([]*Node{
		{Name: "node1", Inputs: []string{"output"}, Outputs: []string{"final"}},
		{Name: "node0", Inputs: []string{"input"}, Outputs: []string{"output"}},
	})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"node0", "node1"}, p.NodeNames()); diff != "" {
		t.Errorf("NodeNames() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, p.ParentsOf("node0"))
	assert.Equal(t, []string{"node0"}, p.ParentsOf("node1"))
}

func TestNew_OrderIsStableForIndependentNodes(t *testing.T) {
	p, err := New([]*Node{
		{Name: "c"},
		{Name: "a"},
		{Name: "b", DependsOn: []string{"c"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, p.NodeNames())
}

func TestNew_ParentsFollowNodeOrder(t *testing.T) {
	p, err := New([]*Node{
		{Name: "join", Inputs: []string{"right", "left"}},
		{Name: "load_left", Outputs: []string{"left"}},
		{Name: "load_right", Outputs: []string{"right"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"load_left", "load_right", "join"}, p.NodeNames())
	assert.Equal(t, []string{"load_left", "load_right"}, p.ParentsOf("join"))
}

func TestNew_DefaultNodeName(t *testing.T) {
	p, err := New([]*Node{
		{Func: "nodes.identity", Inputs: []string{"a", "b"}, Outputs: []string{"c"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"nodes.identity([a,b]) -> [c]"}, p.NodeNames())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []*Node
		wantErr string
		isCycle bool
	}{
		{
			name:    "duplicate names",
			nodes:   []*Node{{Name: "a"}, {Name: "a"}},
			wantErr: `duplicate node name "a"`,
		},
		{
			name: "duplicate outputs",
			nodes: []*Node{
				{Name: "a", Outputs: []string{"x"}},
				{Name: "b", Outputs: []string{"x"}},
			},
			wantErr: `output "x" is returned by more than one node`,
		},
		{
			name:    "unknown explicit dependency",
			nodes:   []*Node{{Name: "a", DependsOn: []string{"ghost"}}},
			wantErr: `node "a" depends on unknown node "ghost"`,
		},
		{
			name:    "self dependency",
			nodes:   []*Node{{Name: "a", Inputs: []string{"x"}, Outputs: []string{"x"}}},
			isCycle: true,
		},
		{
			name: "cycle",
			nodes: []*Node{
				{Name: "a", Inputs: []string{"y"}, Outputs: []string{"x"}},
				{Name: "b", Inputs: []string{"x"}, Outputs: []string{"y"}},
			},
			isCycle: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes)
			require.Error(t, err)
			if tt.isCycle {
				assert.True(t, errors.Is(err, ErrCircularDependency), "expected ErrCircularDependency, got %v", err)
				return
			}
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPipeline_Union(t *testing.T) {
	de, err := New([]*Node{{Name: "preprocess", Inputs: []string{"raw"}, Outputs: []string{"clean"}}})
	require.NoError(t, err)
	ds, err := New([]*Node{{Name: "train", Inputs: []string{"clean"}, Outputs: []string{"model"}}})
	require.NoError(t, err)

	all, err := ds.Union(de, de)
	require.NoError(t, err)

	assert.Equal(t, 2, all.Len())
	assert.Equal(t, []string{"preprocess", "train"}, all.NodeNames())
	assert.Equal(t, []string{"preprocess"}, all.ParentsOf("train"))
}

func TestPipeline_FilterByTags(t *testing.T) {
	p, err := New([]*Node{
		{Name: "a", Outputs: []string{"x"}, Tags: []string{"etl"}},
		{Name: "b", Inputs: []string{"x"}, Tags: []string{"ml"}},
		{Name: "c", DependsOn: []string{"b"}, Tags: []string{"etl"}},
	})
	require.NoError(t, err)

	etl, err := p.FilterByTags("etl")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, etl.NodeNames())
	assert.Empty(t, etl.ParentsOf("c"))

	same, err := p.FilterByTags()
	require.NoError(t, err)
	assert.Same(t, p, same)
}

func TestPipeline_NodeDependenciesIsACopy(t *testing.T) {
	p, err := New([]*Node{
		{Name: "a", Outputs: []string{"x"}},
		{Name: "b", Inputs: []string{"x"}},
	})
	require.NoError(t, err)

	deps := p.NodeDependencies()
	deps["b"][0] = "mutated"

	assert.Equal(t, []string{"a"}, p.ParentsOf("b"))
	if diff := cmp.Diff(map[string][]string{"a": {}, "b": {"a"}}, p.NodeDependencies()); diff != "" {
		t.Errorf("NodeDependencies() mismatch (-want +got):\n%s", diff)
	}
}
