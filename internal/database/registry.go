package database

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry maps environment names to their connection pools. Environments
// are registered once at startup and are immutable afterwards; pools are
// created lazily on first Resolve. The registry is the only process-wide
// mutable shared state, and each environment entry synchronizes
// independently so distinct environments operate in parallel.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
	dial    Dialer
	closed  bool
}

type registryEntry struct {
	cfg  EnvironmentConfig
	once sync.Once
	pool *Pool
}

// NewRegistry builds a registry over the given environments.
func NewRegistry(envs []EnvironmentConfig, dial Dialer) *Registry {
	entries := make(map[string]*registryEntry, len(envs))
	for _, cfg := range envs {
		entries[cfg.Name] = &registryEntry{cfg: cfg}
	}
	return &Registry{entries: entries, dial: dial}
}

// Resolve returns the pool for the named environment, creating it on first
// use. Unknown names fail with EnvironmentNotConfigured.
func (r *Registry) Resolve(name string) (*Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, NewError(KindEnvironmentNotConfigured, "registry has been shut down")
	}
	entry, ok := r.entries[name]
	if !ok {
		return nil, NewError(KindEnvironmentNotConfigured,
			"environment %q is not configured (known: %v)", name, r.environmentNamesLocked())
	}
	entry.once.Do(func() {
		slog.Info("creating connection pool",
			"environment", entry.cfg.Name,
			"host", entry.cfg.Host,
			"port", entry.cfg.Port,
			"pool_size", entry.cfg.PoolSize)
		entry.pool = NewPool(entry.cfg, r.dial)
	})
	return entry.pool, nil
}

// Environment returns the immutable configuration for name.
func (r *Registry) Environment(name string) (EnvironmentConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[name]
	if !ok {
		return EnvironmentConfig{}, NewError(KindEnvironmentNotConfigured,
			"environment %q is not configured", name)
	}
	return entry.cfg, nil
}

// EnvironmentNames lists the configured environment names, sorted.
func (r *Registry) EnvironmentNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.environmentNamesLocked()
}

func (r *Registry) environmentNamesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close tears down every instantiated pool. Called once at process shutdown.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var firstErr error
	for name, entry := range r.entries {
		if entry.pool == nil {
			continue
		}
		if err := entry.pool.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing pool %q: %w", name, err)
		}
	}
	return firstErr
}
