// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package staging copies a project's configuration and source package next to a generated DAG
// so that the scheduler's workers can import and run it.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gotin/kedro-dbc-airflow/internal/logging"
)

const (
	// KedroConfDir is the directory under the target that holds staged project roots.
	KedroConfDir = "kedro_conf"
	logsDir      = "logs"
	confDir      = "conf"
)

// Options configures a Stager.
type Options struct {
	// ConfSource is the project's configuration directory.
	ConfSource string
	// PackageSource is the project's source package directory.
	PackageSource string
	// PackageName names the staged package and its project root.
	PackageName string
	// TargetDir is the directory the DAG file is written to.
	TargetDir string
	// Bootstrap replaces BootstrapFile in the staged package.
	Bootstrap []byte
	// BootstrapFile is relative to the package directory.
	BootstrapFile string
	Filter        *FileFilter
}

// Result describes a staged artifact tree.
type Result struct {
	ProjectDir    string
	ConfDir       string
	LogsDir       string
	PackageDir    string
	BootstrapPath string

	ConfFiles   int
	PackageDirs int
	SourceFiles int
}

// Stager writes the staged artifact tree.
type Stager struct {
	opts Options
}

// New creates a stager. PackageName, TargetDir and BootstrapFile are required.
func New(opts Options) (*Stager, error) {
	if opts.PackageName == "" {
		return nil, errors.New("package name is required")
	}
	if opts.TargetDir == "" {
		return nil, errors.New("target directory is required")
	}
	if opts.BootstrapFile == "" {
		return nil, errors.New("bootstrap file is required")
	}
	if opts.Filter == nil {
		opts.Filter = DefaultFilter()
	}
	return &Stager{opts: opts}, nil
}

// Layout returns the paths Stage writes to without touching the filesystem.
func (s *Stager) Layout() *Result {
	projectDir := filepath.Join(s.opts.TargetDir, KedroConfDir, s.opts.PackageName)
	packageDir := filepath.Join(s.opts.TargetDir, s.opts.PackageName)
	return &Result{
		ProjectDir:    projectDir,
		ConfDir:       filepath.Join(projectDir, confDir),
		LogsDir:       filepath.Join(projectDir, logsDir),
		PackageDir:    packageDir,
		BootstrapPath: filepath.Join(packageDir, filepath.FromSlash(s.opts.BootstrapFile)),
	}
}

// Stage creates the staged project root, merges the configuration into it, mirrors the source
// package and writes the bootstrap file. Existing files that the sources do not have are kept.
// The first error aborts the run and leaves whatever was already written in place.
func (s *Stager) Stage(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)
	res := s.Layout()

	for _, dir := range []string{res.LogsDir, res.ConfDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	n, err := copyTree(s.opts.ConfSource, res.ConfDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stage configuration: %w", err)
	}
	res.ConfFiles = n
	logger.Debug("Staged configuration", "source", s.opts.ConfSource, "dest", res.ConfDir, "files", n)

	dirs, files, err := s.collectPackage()
	if err != nil {
		return nil, fmt.Errorf("failed to read source package: %w", err)
	}

	for _, rel := range dirs {
		if err := os.MkdirAll(filepath.Join(res.PackageDir, rel), 0o755); err != nil {
			return nil, fmt.Errorf("failed to mirror package directory %s: %w", rel, err)
		}
	}
	res.PackageDirs = len(dirs)

	bootstrapRel := filepath.FromSlash(s.opts.BootstrapFile)
	for _, f := range files {
		if f.rel == bootstrapRel {
			continue
		}
		if err := copyFile(filepath.Join(s.opts.PackageSource, f.rel), filepath.Join(res.PackageDir, f.rel), f.mode); err != nil {
			return nil, fmt.Errorf("failed to stage source file %s: %w", f.rel, err)
		}
		res.SourceFiles++
	}

	if err := os.MkdirAll(filepath.Dir(res.BootstrapPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", filepath.Dir(res.BootstrapPath), err)
	}
	if err := os.WriteFile(res.BootstrapPath, s.opts.Bootstrap, 0o644); err != nil { //nolint:gosec // sources are read by the scheduler
		return nil, fmt.Errorf("failed to write bootstrap file: %w", err)
	}
	res.SourceFiles++

	logger.Debug("Staged source package",
		"source", s.opts.PackageSource,
		"dest", res.PackageDir,
		"dirs", res.PackageDirs,
		"files", res.SourceFiles)
	return res, nil
}

type sourceFile struct {
	rel  string
	mode fs.FileMode
}

// collectPackage lists the directories and files of the source package that pass the filter,
// relative to the package root. Directories come before their contents.
func (s *Stager) collectPackage() ([]string, []sourceFile, error) {
	root := s.opts.PackageSource
	var dirs []string
	var files []sourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !s.opts.Filter.ShouldDescendIntoDir(d.Name()) {
				return filepath.SkipDir
			}
			dirs = append(dirs, rel)
			return nil
		}
		if !d.Type().IsRegular() || !s.opts.Filter.ShouldCopy(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, sourceFile{rel: rel, mode: info.Mode().Perm()})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return dirs, files, nil
}

// copyTree copies src into dst, overwriting files with the same relative path and leaving every
// other file of dst alone. Symbolic links are followed. It returns the number of files copied.
func copyTree(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", src)
	}

	count := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		switch {
		case info.IsDir() && d.Type()&fs.ModeSymlink != 0:
			n, err := copyTree(path, target)
			count += n
			return err
		case info.IsDir():
			return os.MkdirAll(target, 0o755)
		case info.Mode().IsRegular():
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

// copyFile copies src to dst, truncating dst if it exists. The owner write bit is always set so
// that a later run can overwrite the copy.
func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode|0o200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
