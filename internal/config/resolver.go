package config

import (
	"context"
	"sync"
)

// resolverKey is the context key for ConfigResolver
type resolverKey struct{}

// workDirKey is the context key for the working directory
type workDirKey struct{}

// ConfigResolver provides lazy per-repo config resolution with caching.
// It merges .mementor.toml and MEMENTOR_* overrides with the global config
// on demand.
type ConfigResolver struct {
	global *Config

	mu    sync.Mutex
	cache map[string]*Config // repo root -> effective config
}

// NewResolver creates a new ConfigResolver backed by the given global config.
func NewResolver(global *Config) *ConfigResolver {
	return &ConfigResolver{
		global: global,
		cache:  make(map[string]*Config),
	}
}

// ConfigForRepo returns the effective config for a repo root: global config,
// then .mementor.toml, then .env and environment overrides. Results are
// cached per root.
func (r *ConfigResolver) ConfigForRepo(root string) (*Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[root]; ok {
		return cached, nil
	}

	local, err := LoadLocal(root)
	if err != nil {
		return nil, err
	}

	merged := MergeLocal(r.global, local)

	env, err := EnvOverrides(root)
	if err != nil {
		return nil, err
	}
	merged, err = ApplyEnv(merged, env)
	if err != nil {
		return nil, err
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	r.cache[root] = merged
	return merged, nil
}

// Global returns the global config (without any local overrides).
func (r *ConfigResolver) Global() *Config {
	return r.global
}

// WithResolver returns a new context with the ConfigResolver stored in it.
func WithResolver(ctx context.Context, r *ConfigResolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// ResolverFromContext returns the ConfigResolver from context.
// Returns nil if no resolver is stored.
func ResolverFromContext(ctx context.Context) *ConfigResolver {
	if r, ok := ctx.Value(resolverKey{}).(*ConfigResolver); ok {
		return r
	}
	return nil
}

// WithWorkDir returns a new context carrying the working directory.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory from context.
// Returns "" if none is stored.
func WorkDirFromContext(ctx context.Context) string {
	if d, ok := ctx.Value(workDirKey{}).(string); ok {
		return d
	}
	return ""
}
