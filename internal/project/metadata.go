// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package project reads a Kedro-style project from disk: its metadata, its pipeline
// registry and its environment-layered configuration.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// MetadataFile marks the root of a project.
	MetadataFile = ".kedro.yml"

	defaultSourceDir = "src"
	defaultConfRoot  = "conf"
)

// ErrProjectNotFound is returned when no metadata file is found.
var ErrProjectNotFound = errors.New("could not find the project configuration file " + MetadataFile)

var (
	pipelineFileCandidates = []string{"pipelines.yml", "pipelines.yaml", "pipelines.hcl"}
	identifierPattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Metadata describes a project: its identity and where its parts live.
type Metadata struct {
	ProjectName    string `yaml:"project_name" validate:"required"`
	ProjectVersion string `yaml:"project_version"`
	PackageName    string `yaml:"package_name" validate:"required,identifier"`
	SourceDir      string `yaml:"source_dir"`
	ConfRoot       string `yaml:"conf_root"`
	Pipelines      string `yaml:"pipelines"`

	// ProjectPath is the absolute directory holding the metadata file.
	ProjectPath string `yaml:"-" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return v
}

// LoadMetadata reads and validates the metadata file at the root of projectPath.
func LoadMetadata(projectPath string) (*Metadata, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}
	data, err := os.ReadFile(filepath.Join(abs, MetadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrProjectNotFound, abs)
		}
		return nil, fmt.Errorf("failed to read project metadata: %w", err)
	}

	md := &Metadata{}
	if err := yaml.Unmarshal(data, md); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", MetadataFile, err)
	}
	md.ProjectPath = abs
	if md.SourceDir == "" {
		md.SourceDir = defaultSourceDir
	}
	if md.ConfRoot == "" {
		md.ConfRoot = defaultConfRoot
	}

	if err := newValidator().Struct(md); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", MetadataFile, err)
	}
	return md, nil
}

// FindProjectRoot walks up from start until it finds a directory holding the metadata file.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, MetadataFile)); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrProjectNotFound, start)
		}
		dir = parent
	}
}

// PackageDir returns the directory of the project's source package.
func (m *Metadata) PackageDir() string {
	return filepath.Join(m.resolve(m.SourceDir), m.PackageName)
}

// ConfDir returns the project's configuration root.
func (m *Metadata) ConfDir() string {
	return m.resolve(m.ConfRoot)
}

// PipelinesFile returns the registry file path. When none is declared, the first existing
// candidate is used.
func (m *Metadata) PipelinesFile() (string, error) {
	if m.Pipelines != "" {
		return m.resolve(m.Pipelines), nil
	}
	for _, name := range pipelineFileCandidates {
		path := filepath.Join(m.ProjectPath, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no pipeline registry found in %s (looked for %v)", m.ProjectPath, pipelineFileCandidates)
}

func (m *Metadata) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.ProjectPath, p)
}
