// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"
)

// Definition is a pipeline as declared in a registry file, before validation.
type Definition struct {
	// Include names other registry pipelines whose nodes become part of this one.
	Include []string `yaml:"include"`
	Nodes   []*Node  `yaml:"nodes"`
}

// registryDocument is the YAML form of a registry file:
//
//	pipelines:
//	  data_engineering:
//	    nodes:
//	      - name: preprocess
//	        inputs: [companies]
//	        outputs: [preprocessed_companies]
type registryDocument struct {
	Pipelines map[string]Definition `yaml:"pipelines"`
}

// hclDocument is the HCL form of a registry file:
//
//	pipeline "data_engineering" {
//	  node "preprocess" {
//	    inputs  = ["companies"]
//	    outputs = ["preprocessed_companies"]
//	  }
//	}
type hclDocument struct {
	Pipelines []hclPipeline `hcl:"pipeline,block"`
}

type hclPipeline struct {
	Name    string   `hcl:"name,label"`
	Include []string `hcl:"include,optional"`
	Nodes   []*Node  `hcl:"node,block"`
}

// ParseDefinitions decodes registry file contents. The format is chosen from the file extension:
// .hcl files use HCL native syntax, anything else is read as YAML.
func ParseDefinitions(filename string, data []byte) (map[string]Definition, error) {
	if strings.EqualFold(filepath.Ext(filename), ".hcl") {
		var doc hclDocument
		if err := hclsimple.Decode(filename, data, nil, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
		defs := make(map[string]Definition, len(doc.Pipelines))
		for _, p := range doc.Pipelines {
			if _, dup := defs[p.Name]; dup {
				return nil, fmt.Errorf("failed to parse %s: pipeline %q declared more than once", filename, p.Name)
			}
			defs[p.Name] = Definition{Include: p.Include, Nodes: p.Nodes}
		}
		return defs, nil
	}

	var doc registryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if doc.Pipelines == nil {
		doc.Pipelines = map[string]Definition{}
	}
	return doc.Pipelines, nil
}

// LoadRegistryFile reads a registry file and builds every pipeline it declares.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline registry: %w", err)
	}
	defs, err := ParseDefinitions(path, data)
	if err != nil {
		return nil, err
	}
	return BuildRegistry(defs)
}
