// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline models a declared pipeline: an ordered set of nodes and, for each node,
// the nodes it depends on.
package pipeline

import (
	"fmt"
	"slices"
	"strings"
)

// Pipeline is an immutable, validated node graph.
// Nodes are kept in topological order with ties broken by declaration order.
type Pipeline struct {
	nodes   []*Node
	byName  map[string]*Node
	parents map[string][]string
}

// New validates the given nodes and builds a pipeline from them.
// It rejects duplicate node names, datasets produced by more than one node,
// depends_on references to unknown nodes and cyclic dependencies.
func New(nodes []*Node) (*Pipeline, error) {
	declared := make([]*Node, 0, len(nodes))
	byName := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		cp := *n
		if cp.Name == "" {
			cp.Name = cp.DefaultName()
		}
		if _, dup := byName[cp.Name]; dup {
			return nil, fmt.Errorf("duplicate node name %q", cp.Name)
		}
		byName[cp.Name] = &cp
		declared = append(declared, &cp)
	}

	producers := make(map[string]string)
	for _, n := range declared {
		for _, out := range n.Outputs {
			if prev, dup := producers[out]; dup {
				return nil, fmt.Errorf("output %q is returned by more than one node: %q and %q", out, prev, n.Name)
			}
			producers[out] = n.Name
		}
	}

	parentSets := make(map[string]map[string]struct{}, len(declared))
	for _, n := range declared {
		set := make(map[string]struct{})
		for _, in := range n.Inputs {
			if producer, ok := producers[in]; ok {
				set[producer] = struct{}{}
			}
		}
		for _, dep := range n.DependsOn {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("node %q depends on unknown node %q", n.Name, dep)
			}
			set[dep] = struct{}{}
		}
		if _, self := set[n.Name]; self {
			return nil, fmt.Errorf("%w: node %q depends on itself", ErrCircularDependency, n.Name)
		}
		parentSets[n.Name] = set
	}

	ordered, err := toposort(declared, parentSets)
	if err != nil {
		return nil, err
	}

	position := make(map[string]int, len(ordered))
	for i, n := range ordered {
		position[n.Name] = i
	}
	parents := make(map[string][]string, len(ordered))
	for _, n := range ordered {
		list := make([]string, 0, len(parentSets[n.Name]))
		for p := range parentSets[n.Name] {
			list = append(list, p)
		}
		slices.SortFunc(list, func(a, b string) int { return position[a] - position[b] })
		parents[n.Name] = list
	}

	return &Pipeline{nodes: ordered, byName: byName, parents: parents}, nil
}

// toposort orders nodes so every node comes after its parents. Among nodes whose
// parents are all placed, the one declared first wins.
func toposort(declared []*Node, parentSets map[string]map[string]struct{}) ([]*Node, error) {
	placed := make(map[string]bool, len(declared))
	ordered := make([]*Node, 0, len(declared))
	for len(ordered) < len(declared) {
		progressed := false
		for _, n := range declared {
			if placed[n.Name] || !allPlaced(parentSets[n.Name], placed) {
				continue
			}
			placed[n.Name] = true
			ordered = append(ordered, n)
			progressed = true
			break
		}
		if !progressed {
			var stuck []string
			for _, n := range declared {
				if !placed[n.Name] {
					stuck = append(stuck, n.Name)
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(stuck, ", "))
		}
	}
	return ordered, nil
}

func allPlaced(set map[string]struct{}, placed map[string]bool) bool {
	for p := range set {
		if !placed[p] {
			return false
		}
	}
	return true
}

// Nodes returns the nodes in topological order.
func (p *Pipeline) Nodes() []*Node {
	return slices.Clone(p.nodes)
}

// NodeNames returns the node names in topological order.
func (p *Pipeline) NodeNames() []string {
	names := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		names[i] = n.Name
	}
	return names
}

// Node looks up a node by name.
func (p *Pipeline) Node(name string) (*Node, bool) {
	n, ok := p.byName[name]
	return n, ok
}

// ParentsOf returns the names of the nodes the named node depends on, in node order.
func (p *Pipeline) ParentsOf(name string) []string {
	return slices.Clone(p.parents[name])
}

// NodeDependencies returns, for every node, the names of its parents.
func (p *Pipeline) NodeDependencies() map[string][]string {
	deps := make(map[string][]string, len(p.parents))
	for name, parents := range p.parents {
		deps[name] = slices.Clone(parents)
	}
	return deps
}

// Len returns the number of nodes.
func (p *Pipeline) Len() int {
	return len(p.nodes)
}

// Union combines this pipeline with others. Nodes sharing a name are kept once.
func (p *Pipeline) Union(others ...*Pipeline) (*Pipeline, error) {
	seen := make(map[string]bool)
	var nodes []*Node
	for _, pl := range append([]*Pipeline{p}, others...) {
		if pl == nil {
			continue
		}
		for _, n := range pl.nodes {
			if seen[n.Name] {
				continue
			}
			seen[n.Name] = true
			nodes = append(nodes, n)
		}
	}
	return New(nodes)
}

// FilterByTags returns a pipeline holding only the nodes that carry at least one of the tags.
// Explicit dependencies on nodes that were filtered out are dropped.
func (p *Pipeline) FilterByTags(tags ...string) (*Pipeline, error) {
	if len(tags) == 0 {
		return p, nil
	}
	keep := make(map[string]bool)
	for _, n := range p.nodes {
		if n.HasTag(tags...) {
			keep[n.Name] = true
		}
	}
	var nodes []*Node
	for _, n := range p.nodes {
		if !keep[n.Name] {
			continue
		}
		cp := *n
		cp.DependsOn = slices.DeleteFunc(slices.Clone(n.DependsOn), func(dep string) bool { return !keep[dep] })
		nodes = append(nodes, &cp)
	}
	return New(nodes)
}
