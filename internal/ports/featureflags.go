package ports

import (
	"context"
	"strings"
	"sync"
)

// FeatureFlags evaluates boolean feature switches.
// Callers always pass the value to use when the flag is unknown.
type FeatureFlags interface {
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
}

// StaticFeatureFlags serves flags from a fixed map, usually the "features"
// section of the configuration. Flag names are case-insensitive.
type StaticFeatureFlags struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewStaticFeatureFlags copies flags into a new StaticFeatureFlags.
func NewStaticFeatureFlags(flags map[string]bool) *StaticFeatureFlags {
	s := &StaticFeatureFlags{flags: make(map[string]bool, len(flags))}
	for k, v := range flags {
		s.flags[strings.ToLower(k)] = v
	}

	return s
}

// IsEnabled implements FeatureFlags.
func (s *StaticFeatureFlags) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.flags[strings.ToLower(flag)]; ok {
		return v
	}

	return defaultValue
}

// Set overrides a flag at runtime.
func (s *StaticFeatureFlags) Set(flag string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags[strings.ToLower(flag)] = enabled
}
