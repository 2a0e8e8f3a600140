// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCircularDependency is returned when the parent relation of a pipeline contains a cycle.
	ErrCircularDependency = errors.New("circular dependencies exist among nodes")

	// ErrPipelineNotFound is returned when a pipeline name is not present in the registry.
	ErrPipelineNotFound = errors.New("pipeline not found")
)

// Node is a named unit of work within a pipeline.
type Node struct {
	// Name identifies the node within a pipeline. It becomes the task id in the rendered DAG.
	Name string `yaml:"name" hcl:"name,label"`

	// Func is the dotted path of the function the node runs.
	Func string `yaml:"func" hcl:"func,optional"`

	// Inputs lists the datasets the node consumes.
	Inputs []string `yaml:"inputs" hcl:"inputs,optional"`

	// Outputs lists the datasets the node produces.
	Outputs []string `yaml:"outputs" hcl:"outputs,optional"`

	// DependsOn lists nodes that must run first even though no dataset connects them.
	DependsOn []string `yaml:"depends_on" hcl:"depends_on,optional"`

	// Tags are free-form labels used to filter pipelines.
	Tags []string `yaml:"tags" hcl:"tags,optional"`
}

// DefaultName returns the name a node gets when none is declared: func([inputs]) -> [outputs].
func (n *Node) DefaultName() string {
	return fmt.Sprintf("%s([%s]) -> [%s]", n.Func, strings.Join(n.Inputs, ","), strings.Join(n.Outputs, ","))
}

func (n *Node) nameOrDefault() string {
	if n.Name != "" {
		return n.Name
	}
	return n.DefaultName()
}

// HasTag reports whether the node carries any of the given tags.
func (n *Node) HasTag(tags ...string) bool {
	for _, want := range tags {
		for _, tag := range n.Tags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

func (n *Node) String() string {
	return n.Name
}
