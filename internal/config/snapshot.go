package config

import "sync/atomic"

// Snapshot is an atomic, shared, replace-only reference to the active
// Config. Readers perform a lock-free load and always observe a complete,
// internally-consistent Config; there is no partial-update race because
// replacement always swaps in a whole new value.
//
// This service never replaces the snapshot after startup (config is loaded
// once in cmd/rodan/main.go), but the type itself supports it for callers
// that construct one from a hot-reload path in the future.
type Snapshot struct {
	v atomic.Pointer[Config]
}

// NewSnapshot returns a Snapshot holding cfg.
func NewSnapshot(cfg *Config) *Snapshot {
	s := &Snapshot{}
	s.v.Store(cfg)
	return s
}

// Load returns the currently active Config.
func (s *Snapshot) Load() *Config {
	return s.v.Load()
}

// Store atomically replaces the active Config.
func (s *Snapshot) Store(cfg *Config) {
	s.v.Store(cfg)
}
