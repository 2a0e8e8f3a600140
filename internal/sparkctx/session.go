// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package sparkctx

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultLogLevel is the verbosity applied to sessions created by InitSparkSession.
const DefaultLogLevel = "WARN"

// CatalogImplementationKey selects the catalog backing the session.
const CatalogImplementationKey = "spark.sql.catalogImplementation"

var validLogLevels = []string{"ALL", "DEBUG", "ERROR", "FATAL", "INFO", "OFF", "TRACE", "WARN"}

// Session is a handle to a distributed compute session.
type Session struct {
	mu       sync.RWMutex
	appID    string
	appName  string
	conf     map[string]string
	logLevel string
}

// AppID returns the application id assigned when the session was created.
func (s *Session) AppID() string {
	return s.appID
}

// AppName returns the application name.
func (s *Session) AppName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appName
}

// Conf returns a copy of the session configuration.
func (s *Session) Conf() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.conf)
}

// Get returns a configuration value.
func (s *Session) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.conf[key]
	return v, ok
}

// HiveSupportEnabled reports whether the session uses the Hive catalog.
func (s *Session) HiveSupportEnabled() bool {
	v, _ := s.Get(CatalogImplementationKey)
	return v == "hive"
}

// LogLevel returns the current log level.
func (s *Session) LogLevel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logLevel
}

// SetLogLevel changes the session log level. Level names are case-insensitive.
func (s *Session) SetLogLevel(level string) error {
	upper := strings.ToUpper(level)
	if !slices.Contains(validLogLevels, upper) {
		return fmt.Errorf("invalid log level %q: must be one of %s", level, strings.Join(validLogLevels, ", "))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logLevel = upper
	return nil
}

func (s *Session) apply(conf map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.conf, conf)
}

// Registry tracks the active session of a process. Callers share one Registry to get
// get-or-create semantics instead of relying on hidden global state.
type Registry struct {
	mu     sync.Mutex
	active *Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Active returns the active session, if any.
func (r *Registry) Active() (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.active != nil
}

// Stop forgets the active session.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = nil
}

// Builder collects options for a session.
type Builder struct {
	appName string
	conf    map[string]string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{conf: make(map[string]string)}
}

// AppName sets the application name.
func (b *Builder) AppName(name string) *Builder {
	b.appName = name
	return b
}

// EnableHiveSupport backs the session catalog with Hive.
func (b *Builder) EnableHiveSupport() *Builder {
	b.conf[CatalogImplementationKey] = "hive"
	return b
}

// Config sets one configuration value.
func (b *Builder) Config(key, value string) *Builder {
	b.conf[key] = value
	return b
}

// ConfigMap sets every entry of conf.
func (b *Builder) ConfigMap(conf map[string]string) *Builder {
	maps.Copy(b.conf, conf)
	return b
}

// GetOrCreate returns the registry's active session with the builder options applied to it, or
// creates and registers a new one. The boolean reports whether a session was created.
func (b *Builder) GetOrCreate(r *Registry) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		r.active.apply(b.conf)
		return r.active, false
	}

	s := &Session{
		appID:    "app-" + uuid.NewString(),
		appName:  b.appName,
		conf:     maps.Clone(b.conf),
		logLevel: "INFO",
	}
	if s.appName != "" {
		s.conf["spark.app.name"] = s.appName
	}
	r.active = s
	return s, true
}

// ParseConf parses key=value pairs into a session configuration. Later pairs win.
func ParseConf(pairs []string) (map[string]string, error) {
	conf := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid spark conf %q: expected key=value", pair)
		}
		conf[key] = value
	}
	return conf, nil
}
