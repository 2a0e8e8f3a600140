// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// DefaultPipelineName is the designated default pipeline of a project.
const DefaultPipelineName = "__default__"

// Registry holds the named pipelines of a project.
type Registry struct {
	pipelines map[string]*Pipeline
}

// BuildRegistry validates the definitions and resolves includes.
// When no default pipeline is declared, it is the union of all declared pipelines.
func BuildRegistry(defs map[string]Definition) (*Registry, error) {
	r := &Registry{pipelines: make(map[string]*Pipeline, len(defs)+1)}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := r.resolve(name, defs, nil); err != nil {
			return nil, err
		}
	}

	if _, ok := r.pipelines[DefaultPipelineName]; !ok {
		all := make([]*Pipeline, 0, len(names))
		for _, name := range names {
			all = append(all, r.pipelines[name])
		}
		def, err := (&Pipeline{}).Union(all...)
		if err != nil {
			return nil, fmt.Errorf("failed to build default pipeline: %w", err)
		}
		r.pipelines[DefaultPipelineName] = def
	}
	return r, nil
}

func (r *Registry) resolve(name string, defs map[string]Definition, stack []string) (*Pipeline, error) {
	if p, ok := r.pipelines[name]; ok {
		return p, nil
	}
	if slices.Contains(stack, name) {
		return nil, fmt.Errorf("pipeline include cycle: %s -> %s", strings.Join(stack, " -> "), name)
	}
	def, ok := defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPipelineNotFound, name)
	}

	nodes := slices.Clone(def.Nodes)
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n != nil {
			seen[n.nameOrDefault()] = true
		}
	}
	for _, inc := range def.Include {
		p, err := r.resolve(inc, defs, append(stack, name))
		if err != nil {
			return nil, fmt.Errorf("pipeline %q includes %q: %w", name, inc, err)
		}
		for _, n := range p.nodes {
			if !seen[n.Name] {
				seen[n.Name] = true
				nodes = append(nodes, n)
			}
		}
	}

	// Own and included nodes are validated together, so depends_on may name an included node.
	combined, err := New(nodes)
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline %q: %w", name, err)
	}
	r.pipelines[name] = combined
	return combined, nil
}

// Get returns the named pipeline.
func (r *Registry) Get(name string) (*Pipeline, error) {
	p, ok := r.pipelines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrPipelineNotFound, name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered pipeline names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.pipelines))
	for name := range r.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
