// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package staging

import (
	"path/filepath"
	"strings"
)

// FileFilter determines which parts of a source package are staged
type FileFilter struct {
	ReservedPrefixes []string
	IncludeExts      []string
}

// DefaultFilter skips interpreter caches and other reserved directories and stages Python sources
func DefaultFilter() *FileFilter {
	return &FileFilter{
		ReservedPrefixes: []string{"__"},
		IncludeExts:      []string{".py"},
	}
}

// ShouldDescendIntoDir determines if a directory, and with it its whole subtree, is mirrored
func (f *FileFilter) ShouldDescendIntoDir(dirName string) bool {
	for _, prefix := range f.ReservedPrefixes {
		if strings.HasPrefix(dirName, prefix) {
			return false
		}
	}
	return true
}

// ShouldCopy determines if a file inside a mirrored directory is copied
func (f *FileFilter) ShouldCopy(path string) bool {
	ext := filepath.Ext(path)
	for _, allowedExt := range f.IncludeExts {
		if ext == allowedExt {
			return true
		}
	}
	return false
}
