// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

// Package sparkctx extends a project context with distributed compute session setup, and ships
// the runtime bootstrap that the staged project uses on the scheduler's workers.
package sparkctx

import (
	"context"
	_ "embed"
	"fmt"
	"maps"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gotin/kedro-dbc-airflow/internal/logging"
	"github.com/gotin/kedro-dbc-airflow/internal/project"
)

// ConfigPatterns select the session configuration files of a project.
var ConfigPatterns = []string{"spark*", "spark*/**"}

// BootstrapFile is the source file, relative to the package directory, that the staged tree
// replaces with Bootstrap().
const BootstrapFile = "context.py"

//go:embed bootstrap/context.py
var bootstrap []byte

// Bootstrap returns the bundled scheduler-side context implementation.
func Bootstrap() []byte {
	return bootstrap
}

// Context is a project context able to start a compute session.
type Context struct {
	*project.Context
	registry *Registry
}

// NewContext wraps pctx. Sessions are created in, or reused from, registry.
func NewContext(pctx *project.Context, registry *Registry) *Context {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Context{Context: pctx, registry: registry}
}

// SessionConfig returns the project's session configuration with additional merged over it.
// Nested keys are joined with dots and values are rendered as strings.
func (c *Context) SessionConfig(additional map[string]string) (map[string]string, error) {
	raw, err := c.ConfigLoader.Get(ConfigPatterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load session configuration: %w", err)
	}
	conf := make(map[string]string)
	flatten("", raw, conf)
	maps.Copy(conf, additional)
	return conf, nil
}

// InitSparkSession builds (or reuses) the session named after the package, with Hive catalog
// support and the merged configuration, and caps its log level at WARN.
func (c *Context) InitSparkSession(ctx context.Context, additional map[string]string) (*Session, error) {
	logger := logging.FromContext(ctx)

	conf, err := c.SessionConfig(additional)
	if err != nil {
		return nil, err
	}

	session, created := NewBuilder().
		AppName(c.Metadata.PackageName).
		EnableHiveSupport().
		ConfigMap(conf).
		GetOrCreate(c.registry)
	if err := session.SetLogLevel(DefaultLogLevel); err != nil {
		return nil, err
	}

	logger.Debug("Spark session ready",
		"appName", session.AppName(),
		"appId", session.AppID(),
		"created", created,
		"keys", len(conf))
	return session, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := in[k].(type) {
		case map[string]any:
			flatten(key, v, out)
		default:
			out[key] = formatValue(v)
		}
	}
}

// formatValue renders a configuration scalar the way the Python runtime's str() does, since the
// bootstrap hands the same values to the session builder.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
