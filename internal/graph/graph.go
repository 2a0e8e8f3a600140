// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package graph turns a node -> parents relation into the parent -> children
// mapping used to express "runs after" edges in a scheduler definition.
package graph

import (
	"fmt"
	"slices"
	"strings"
)

// Graph is a read-only view of a pipeline's parent relation.
type Graph interface {
	// NodeNames returns the node names in the pipeline's iteration order.
	NodeNames() []string
	// ParentsOf returns the names of the nodes the given node depends on.
	ParentsOf(name string) []string
}

// Edge states that Child runs after Parent.
type Edge struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

// Entry is one parent together with its children.
type Entry struct {
	Parent   string   `json:"parent"`
	Children []string `json:"children"`
}

// DependencyMapping maps each parent node name to the ordered names of the nodes that declared it
// as a parent. Parents are kept in order of first appearance.
type DependencyMapping struct {
	order    []string
	children map[string][]string
}

// Invert builds the dependency mapping of g. Node B is listed under A exactly when A is one of B's
// parents; children follow the node order of g. Names are passed through as-is, so a parent that is
// not itself a node of g still shows up as a key. See CheckReferences.
func Invert(g Graph) *DependencyMapping {
	m := &DependencyMapping{children: make(map[string][]string)}
	for _, node := range g.NodeNames() {
		for _, parent := range g.ParentsOf(node) {
			if _, ok := m.children[parent]; !ok {
				m.order = append(m.order, parent)
			}
			m.children[parent] = append(m.children[parent], node)
		}
	}
	return m
}

// Parents returns the parent names in order of first appearance.
func (m *DependencyMapping) Parents() []string {
	return slices.Clone(m.order)
}

// Children returns the children of parent, or nil when it has none.
func (m *DependencyMapping) Children(parent string) []string {
	return slices.Clone(m.children[parent])
}

// Entries returns the mapping as ordered parent/children pairs.
func (m *DependencyMapping) Entries() []Entry {
	entries := make([]Entry, 0, len(m.order))
	for _, parent := range m.order {
		entries = append(entries, Entry{Parent: parent, Children: slices.Clone(m.children[parent])})
	}
	return entries
}

// Edges flattens the mapping into parent -> child pairs.
func (m *DependencyMapping) Edges() []Edge {
	edges := make([]Edge, 0, m.Len())
	for _, parent := range m.order {
		for _, child := range m.children[parent] {
			edges = append(edges, Edge{Parent: parent, Child: child})
		}
	}
	return edges
}

// Len returns the number of parent -> child pairs.
func (m *DependencyMapping) Len() int {
	n := 0
	for _, children := range m.children {
		n += len(children)
	}
	return n
}

// IsEmpty reports whether the mapping holds no edges.
func (m *DependencyMapping) IsEmpty() bool {
	return len(m.order) == 0
}

// AsMap returns a copy of the mapping as a plain map.
func (m *DependencyMapping) AsMap() map[string][]string {
	out := make(map[string][]string, len(m.children))
	for parent, children := range m.children {
		out[parent] = slices.Clone(children)
	}
	return out
}

// CheckReferences returns an error listing every name in the mapping that is not in names.
func (m *DependencyMapping) CheckReferences(names []string) error {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	var dangling []string
	seen := make(map[string]bool)
	check := func(name string) {
		if !known[name] && !seen[name] {
			seen[name] = true
			dangling = append(dangling, name)
		}
	}
	for _, e := range m.Edges() {
		check(e.Parent)
		check(e.Child)
	}
	if len(dangling) > 0 {
		return fmt.Errorf("dependency mapping references unknown nodes: %s", strings.Join(dangling, ", "))
	}
	return nil
}

// parentMap adapts a plain node -> parents map to Graph.
type parentMap struct {
	order   []string
	parents map[string][]string
}

// FromParents adapts a node -> parents map to Graph. order fixes the node iteration order.
func FromParents(order []string, parents map[string][]string) Graph {
	return &parentMap{order: slices.Clone(order), parents: parents}
}

func (p *parentMap) NodeNames() []string {
	return slices.Clone(p.order)
}

func (p *parentMap) ParentsOf(name string) []string {
	return slices.Clone(p.parents[name])
}
