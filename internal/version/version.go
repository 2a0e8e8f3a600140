// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information injected at link time, e.g.
//
//	go build -ldflags "-X github.com/gotin/kedro-dbc-airflow/internal/version.version=v0.3.0"
package version

import (
	"runtime"
	"runtime/debug"
)

var (
	version     = "dev"
	gitRevision = ""
	buildTime   = ""
)

// Info describes a build.
type Info struct {
	Version     string `json:"version"`
	GitRevision string `json:"gitRevision"`
	BuildTime   string `json:"buildTime"`
	GoOS        string `json:"goOS"`
	GoArch      string `json:"goArch"`
	GoVersion   string `json:"goVersion"`
}

// Get returns the build information of the running binary. Values not injected at link time
// fall back to the VCS settings recorded by the Go toolchain.
func Get() Info {
	info := Info{
		Version:     version,
		GitRevision: gitRevision,
		BuildTime:   buildTime,
		GoOS:        runtime.GOOS,
		GoArch:      runtime.GOARCH,
		GoVersion:   runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitRevision == "" {
					info.GitRevision = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}
	return info
}
