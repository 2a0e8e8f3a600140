// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package renderer turns a pipeline's dependency mapping into a scheduler workflow definition
// by executing a text template.
package renderer

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// DefaultTemplate is the bundled Airflow DAG template.
const DefaultTemplate = "dbc_af_dag_template.py.tmpl"

var (
	// ErrTemplateNotFound is returned when no directory of the search path holds the template.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidTaskID is returned when node names do not map to distinct, non-empty task ids.
	ErrInvalidTaskID = errors.New("invalid task id")
)

//go:embed templates/*.tmpl
var bundled embed.FS

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s, drops apostrophes and replaces every run of characters other than
// ASCII letters and digits with a single dash, so it can be used as a task id.
// Characters outside ASCII are dropped, so a name made only of them slugifies to "".
func Slugify(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "'", "")
	return strings.Trim(nonSlugChars.ReplaceAllString(s, "-"), "-")
}

// CheckTaskIDs reports every name whose slug is empty and every pair of names sharing a slug.
func CheckTaskIDs(names []string) error {
	var errs []error
	owners := make(map[string]string, len(names))
	for _, name := range names {
		id := Slugify(name)
		if id == "" {
			errs = append(errs, fmt.Errorf("%w: node %q has no letters or digits to build a task id from", ErrInvalidTaskID, name))
			continue
		}
		if prev, dup := owners[id]; dup {
			errs = append(errs, fmt.Errorf("%w: nodes %q and %q both map to %q", ErrInvalidTaskID, prev, name, id))
			continue
		}
		owners[id] = name
	}
	return errors.Join(errs...)
}

// Engine loads templates from an ordered search path and renders them.
type Engine struct {
	search []fs.FS
	funcs  template.FuncMap
}

// Option configures an Engine.
type Option func(*Engine)

// WithTemplateDir puts dir in front of the search path. An empty dir is ignored.
func WithTemplateDir(dir string) Option {
	return func(e *Engine) {
		if dir != "" {
			e.search = append([]fs.FS{os.DirFS(dir)}, e.search...)
		}
	}
}

// WithFS puts fsys in front of the search path.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.search = append([]fs.FS{fsys}, e.search...)
	}
}

// WithFuncs adds template functions, replacing built-in ones of the same name.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// New creates an engine whose search path ends with the bundled templates.
func New(opts ...Option) *Engine {
	templates, err := fs.Sub(bundled, "templates")
	if err != nil {
		panic(fmt.Sprintf("bundled templates: %v", err))
	}

	funcs := sprig.TxtFuncMap()
	funcs["slugify"] = Slugify

	e := &Engine{search: []fs.FS{templates}, funcs: funcs}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lookup parses the named template from the first search path entry that has it.
// An absolute name is read from disk and bypasses the search path.
func (e *Engine) Lookup(name string) (*template.Template, error) {
	data, err := e.read(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(filepath.Base(name)).
		Option("missingkey=error").
		Funcs(e.funcs).
		Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

func (e *Engine) read(name string) ([]byte, error) {
	search := e.search
	if filepath.IsAbs(name) {
		search = []fs.FS{os.DirFS(filepath.Dir(name))}
		name = filepath.Base(name)
	}
	name = filepath.ToSlash(name)
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid template name %q", ErrTemplateNotFound, name)
	}

	for _, fsys := range search {
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}

// Render executes the named template with data and returns the output. A RenderContext is
// validated first.
func (e *Engine) Render(name string, data any) ([]byte, error) {
	switch rc := data.(type) {
	case RenderContext:
		if err := rc.Validate(); err != nil {
			return nil, err
		}
	case *RenderContext:
		if err := rc.Validate(); err != nil {
			return nil, err
		}
	}

	tmpl, err := e.Lookup(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderToFile renders the named template and writes it to outputPath, creating parent
// directories and replacing any existing file. Nothing is written if rendering fails.
func (e *Engine) RenderToFile(name, outputPath string, data any) error {
	out, err := e.Render(name, data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil { //nolint:gosec // DAG files are read by the scheduler
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}
